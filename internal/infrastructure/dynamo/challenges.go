package dynamo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/studlink-api/internal/domain"
)

// challengeAPI is the subset of the DynamoDB client the repo uses.
type challengeAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// ChallengeRepo stores OTP challenges. PK: email.
// expires_at doubles as the table's TTL attribute, so DynamoDB evicts
// unconsumed expired challenges without a sweeper.
type ChallengeRepo struct {
	client    challengeAPI
	tableName string
}

func NewChallengeRepo(client *dynamodb.Client, tableName string) *ChallengeRepo {
	return &ChallengeRepo{client: client, tableName: tableName}
}

// Put stores the challenge, overwriting any live challenge for the same email.
func (r *ChallengeRepo) Put(ctx context.Context, c *domain.Challenge) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Consume validates the submitted code against the stored challenge and, on
// success, deletes it with a conditional write keyed on code equality. The
// condition guarantees at most one of two concurrent attempts can consume
// the same challenge; the loser sees ErrChallengeNotFound.
func (r *ChallengeRepo) Consume(ctx context.Context, email, code string) (*domain.Challenge, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, domain.ErrChallengeNotFound
	}
	var c domain.Challenge
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	if c.Code != code {
		return nil, domain.ErrCodeMismatch
	}
	if c.Expired(time.Now()) {
		// Conditional on the observed code: if a new challenge was issued
		// between the read and this delete, it must survive.
		if err := r.deleteIfCode(ctx, email, code); err != nil {
			var ccf *types.ConditionalCheckFailedException
			if !errors.As(err, &ccf) {
				slog.Warn("failed to delete expired challenge", "email", email, "err", err)
			}
		}
		return nil, domain.ErrChallengeExpired
	}

	if err := r.deleteIfCode(ctx, email, code); err != nil {
		// Condition failure means another request consumed or replaced the
		// challenge between the read and the delete.
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, err
	}
	return &c, nil
}

// deleteIfCode removes the challenge only if its stored code still equals
// code, so a concurrently re-issued challenge is never destroyed.
func (r *ChallengeRepo) deleteIfCode(ctx context.Context, email, code string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("email", email),
		ConditionExpression: aws.String("code = :c"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: code},
		},
	})
	return err
}

// Delete removes the challenge for email, if any.
func (r *ChallengeRepo) Delete(ctx context.Context, email string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	return err
}
