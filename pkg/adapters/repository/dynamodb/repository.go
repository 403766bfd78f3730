// Package dynamodb stores one item per slug in a DynamoDB table keyed by "slug".
package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/wadjakorntonsri/seo-redirects/pkg/core/domain"
	"github.com/wadjakorntonsri/seo-redirects/pkg/ports"
)

// Client is the subset of the DynamoDB API the repository needs.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

type DynamoRepository struct {
	client Client
	table  string
}

var _ ports.RedirectRepository = (*DynamoRepository)(nil)

func NewDynamoRepository(client Client, table string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table}
}

func (r *DynamoRepository) Get(ctx context.Context, slug string) (*domain.Redirect, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       slugKey(slug),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb get %q: %w", slug, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	redirect := itemToRedirect(out.Item)
	return &redirect, nil
}

func (r *DynamoRepository) GetAll(ctx context.Context) (map[string]domain.Redirect, error) {
	redirects := make(map[string]domain.Redirect)

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("dynamodb scan: %w", err)
		}
		for _, item := range out.Items {
			slug := stringAttr(item, "slug")
			if slug == "" {
				continue
			}
			redirects[slug] = itemToRedirect(item)
		}
		if len(out.LastEvaluatedKey) == 0 {
			return redirects, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *DynamoRepository) Save(ctx context.Context, slug string, redirect domain.Redirect) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      redirectToItem(slug, redirect),
	})
	if err != nil {
		return fmt.Errorf("dynamodb put %q: %w", slug, err)
	}
	return nil
}

func (r *DynamoRepository) Delete(ctx context.Context, slug string) (bool, error) {
	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.table),
		Key:          slugKey(slug),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("dynamodb delete %q: %w", slug, err)
	}
	return len(out.Attributes) > 0, nil
}

func (r *DynamoRepository) Close() error { return nil }

func slugKey(slug string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"slug": &types.AttributeValueMemberS{Value: slug}}
}

func redirectToItem(slug string, r domain.Redirect) map[string]types.AttributeValue {
	s := func(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }
	return map[string]types.AttributeValue{
		"slug":       s(slug),
		"title":      s(r.Title),
		"desc":       s(r.Desc),
		"url":        s(r.URL),
		"image":      s(r.Image),
		"video":      s(r.Video),
		"keywords":   s(r.Keywords),
		"site_name":  s(r.SiteName),
		"type":       s(r.Type),
		"created_at": s(domain.FormatTime(r.CreatedAt)),
		"updated_at": s(domain.FormatTime(r.UpdatedAt)),
	}
}

// itemToRedirect tolerates missing attributes; items written before the
// video field existed simply lack it.
func itemToRedirect(item map[string]types.AttributeValue) domain.Redirect {
	return domain.Redirect{
		Title:     stringAttr(item, "title"),
		Desc:      stringAttr(item, "desc"),
		URL:       stringAttr(item, "url"),
		Image:     stringAttr(item, "image"),
		Video:     stringAttr(item, "video"),
		Keywords:  stringAttr(item, "keywords"),
		SiteName:  stringAttr(item, "site_name"),
		Type:      stringAttr(item, "type"),
		CreatedAt: domain.ParseTime(stringAttr(item, "created_at")),
		UpdatedAt: domain.ParseTime(stringAttr(item, "updated_at")),
	}
}

func stringAttr(item map[string]types.AttributeValue, key string) string {
	if v, ok := item[key].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}
