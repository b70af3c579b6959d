package services

import (
	"fmt"

	"github.com/yoockh/bikeparts/internal/models"
	"github.com/yoockh/bikeparts/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseID(op, hex string) (primitive.ObjectID, error) {
	id, err := models.ParseID(hex)
	if err != nil {
		return primitive.NilObjectID, utils.E(utils.CodeInvalidIdentifier, op, "invalid identifier", err)
	}
	return id, nil
}

func requireFields(op string, d models.Document) error {
	if len(d) == 0 {
		return utils.E(utils.CodeInvalidArgument, op, "request body must contain at least one field", nil)
	}
	return nil
}

func idString(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}
