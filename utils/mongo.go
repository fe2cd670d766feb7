package utils

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindAndDecode runs a find and decodes every document, returning an
// empty (non-nil) slice when nothing matches.
func FindAndDecode[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Error and JSON are the short-form response helpers.
func Error(w http.ResponseWriter, code int, msg string) {
	RespondWithError(w, code, msg)
}

func JSON(w http.ResponseWriter, code int, data any) {
	RespondWithJSON(w, code, data)
}

func ToJSON(v any) []byte {
	data, _ := json.Marshal(v)
	return data
}
