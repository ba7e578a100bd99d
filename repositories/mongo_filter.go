package repositories

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-api/query"
)

// BuildMongoFilter traduce un filtro compilado a un documento BSON. Todos los
// predicados se combinan con AND; el texto del usuario solo aparece escapado
// dentro de una regex.
func BuildMongoFilter(filter query.Filter) (bson.D, error) {
	predicates := filter.Predicates()
	if len(predicates) == 0 {
		return bson.D{}, nil
	}

	clauses := make(bson.A, 0, len(predicates))
	for _, p := range predicates {
		clause, err := mongoClause(p)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	return bson.D{{Key: "$and", Value: clauses}}, nil
}

func mongoClause(p query.Predicate) (bson.D, error) {
	switch pred := p.(type) {
	case query.ExactMatch:
		return bson.D{{Key: pred.Field().String(), Value: primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(pred.Value()) + "$",
			Options: "i",
		}}}, nil

	case query.Range:
		bounds := bson.D{}
		if lo, ok := pred.Min(); ok {
			bounds = append(bounds, bson.E{Key: "$gte", Value: lo})
		}
		if hi, ok := pred.Max(); ok {
			bounds = append(bounds, bson.E{Key: "$lte", Value: hi})
		}
		return bson.D{{Key: pred.Field().String(), Value: bounds}}, nil

	case query.SetContainsAll:
		return bson.D{{Key: pred.Field().String(), Value: bson.D{{Key: "$all", Value: pred.Values()}}}}, nil

	case query.TextOr:
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(pred.Term()), Options: "i"}
		alternatives := bson.A{}
		for _, f := range pred.Fields() {
			alternatives = append(alternatives, bson.D{{Key: f.String(), Value: pattern}})
		}
		return bson.D{{Key: "$or", Value: alternatives}}, nil

	case query.Flag:
		return bson.D{{Key: pred.Field().String(), Value: pred.Value()}}, nil

	case query.Reference:
		id, err := primitive.ObjectIDFromHex(pred.ID())
		if err != nil {
			return nil, fmt.Errorf("invalid reference id %q: %w", pred.ID(), err)
		}
		return bson.D{{Key: pred.Field().String(), Value: id}}, nil

	default:
		return nil, fmt.Errorf("unsupported predicate %T", p)
	}
}

// BuildMongoSort traduce un SortSpec a un documento de orden BSON
func BuildMongoSort(spec query.SortSpec) bson.D {
	keys := spec.Keys()
	sort := make(bson.D, 0, len(keys))
	for _, k := range keys {
		sort = append(sort, bson.E{Key: k.Field.String(), Value: int(k.Direction)})
	}
	return sort
}
