package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is a schemaless record as stored in and returned from MongoDB.
// Products, orders, reviews and user profiles carry arbitrary client fields.
type Document = bson.M

const (
	FieldID      = "_id"
	FieldAddedBy = "addedBy"
)

// ParseID converts a hex object id from a URL into a typed identifier.
func ParseID(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(hex)
}

// Without returns a shallow copy of d minus the given top-level keys.
func Without(d Document, keys ...string) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// StringField returns d[key] when it holds a string.
func StringField(d Document, key string) string {
	if d == nil {
		return ""
	}
	s, _ := d[key].(string)
	return s
}

// Keys lists the top-level field names of d.
func Keys(d Document) []string {
	out := make([]string, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	return out
}
