package mongo

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shivam-singh-au17/assessment-sassy/internal/core/query"
)

// listPipeline renders a plan as a single aggregation so the page and the
// total count are read together:
//
//	$match -> $sort -> $project -> $facet{data: [$skip, $limit], count: [$count]}
func listPipeline(plan query.Plan) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: matchStage(plan)}},
		{{Key: "$sort", Value: sortStage(plan)}},
		{{Key: "$project", Value: projectStage(plan)}},
		{{Key: "$facet", Value: bson.D{
			{Key: "data", Value: bson.A{
				bson.D{{Key: "$skip", Value: int64(plan.Skip)}},
				bson.D{{Key: "$limit", Value: int64(plan.Limit)}},
			}},
			{Key: "count", Value: bson.A{
				bson.D{{Key: "$count", Value: "count"}},
			}},
		}}},
	}
}

func matchStage(plan query.Plan) bson.D {
	if plan.Search == "" || len(plan.SearchFields) == 0 {
		return bson.D{}
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(plan.Search), Options: "i"}
	or := make(bson.A, 0, len(plan.SearchFields))
	for _, f := range plan.SearchFields {
		or = append(or, bson.D{{Key: f, Value: re}})
	}
	return bson.D{{Key: "$or", Value: or}}
}

// sortStage orders by the requested field, then by _id so pages are stable
// when sort values tie.
func sortStage(plan query.Plan) bson.D {
	dir := 1
	if plan.Descending {
		dir = -1
	}
	sort := bson.D{{Key: plan.SortBy, Value: dir}}
	if plan.SortBy != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: dir})
	}
	return sort
}

func projectStage(plan query.Plan) bson.D {
	project := make(bson.D, 0, len(plan.Projection))
	for _, f := range plan.Projection {
		project = append(project, bson.E{Key: f, Value: 1})
	}
	return project
}

type facetResult[D any] struct {
	Data  []D `bson:"data"`
	Count []struct {
		Count int64 `bson:"count"`
	} `bson:"count"`
}

// runList executes the list aggregation on coll and converts each document.
func runList[D, T any](ctx context.Context, coll *mongo.Collection, plan query.Plan, convert func(D) T) (query.Result[T], error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := coll.Aggregate(ctx, listPipeline(plan))
	if err != nil {
		return query.Result[T]{}, fmt.Errorf("aggregate %s: %w", coll.Name(), err)
	}
	defer cur.Close(ctx)

	var facets []facetResult[D]
	if err := cur.All(ctx, &facets); err != nil {
		return query.Result[T]{}, fmt.Errorf("decode %s page: %w", coll.Name(), err)
	}

	res := query.Empty[T]()
	if len(facets) == 0 {
		return res, nil
	}
	for _, d := range facets[0].Data {
		res.Data = append(res.Data, convert(d))
	}
	if len(facets[0].Count) > 0 {
		res.Count = facets[0].Count[0].Count
	}
	return res, nil
}
