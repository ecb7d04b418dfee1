package docstore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func ConnectMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return &MongoStore{client: client, db: client.Database(database)}, nil
}

func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{coll: s.db.Collection(name)}
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) All(ctx context.Context) ([]Document, error) {
	cursor, err := c.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(raw))
	for _, m := range raw {
		out = append(out, fromBSON(m))
	}
	return out, nil
}

func (c *mongoCollection) Insert(ctx context.Context, doc Document) error {
	id := doc.ID()
	if id == "" {
		return errMissingID
	}
	record := bson.M(withoutID(doc))
	record["_id"] = id
	_, err := c.coll.InsertOne(ctx, record)
	return err
}

func (c *mongoCollection) Update(ctx context.Context, id string, fields Document) error {
	set := withoutID(fields)
	if len(set) == 0 {
		return c.exists(ctx, id)
	}
	res, err := c.coll.UpdateOne(ctx, idFilter(id), bson.M{"$set": bson.M(set)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *mongoCollection) Delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *mongoCollection) exists(ctx context.Context, id string) error {
	err := c.coll.FindOne(ctx, idFilter(id)).Err()
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

// idFilter matches both string ids and documents created elsewhere with an
// ObjectID.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

func fromBSON(m bson.M) Document {
	doc := make(Document, len(m))
	for key, value := range m {
		if key == "_id" {
			switch id := value.(type) {
			case primitive.ObjectID:
				doc["id"] = id.Hex()
			case string:
				doc["id"] = id
			default:
				doc["id"] = fmt.Sprint(id)
			}
			continue
		}
		doc[key] = value
	}
	return doc
}
