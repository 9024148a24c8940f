package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arkelabs/user-management-api/internal/core/domain"
	"github.com/arkelabs/user-management-api/internal/core/ports"
)

const usersCollection = "users"

// UserRepository is the durable UserRepository backed by MongoDB. Emails are
// stored lowercased; the unique index on the email field makes the
// uniqueness check and the insert atomic server-side.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type mongoProfile struct {
	Role      string `bson:"role"`
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	Phone     string `bson:"phone,omitempty"`
	Address   string `bson:"address,omitempty"`
}

type mongoUser struct {
	ID           string       `bson:"_id"`
	Email        string       `bson:"email"`
	Username     string       `bson:"username"`
	PasswordHash string       `bson:"password_hash"`
	IsActive     bool         `bson:"is_active"`
	Profile      mongoProfile `bson:"profile"`
	CreatedAt    int64        `bson:"created_at"`
	UpdatedAt    int64        `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	doc := mongoUser{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(user.Email),
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		IsActive:     user.IsActive,
		Profile: mongoProfile{
			Role:      string(user.Profile.Role),
			FirstName: user.Profile.FirstName,
			LastName:  user.Profile.LastName,
			Phone:     user.Profile.Phone,
			Address:   user.Profile.Address,
		},
		CreatedAt: now.Unix(),
		UpdatedAt: now.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailInUse
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return fromMongo(doc), nil
}

func (r *UserRepository) FindAll(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	cur, err := r.coll.Find(ctx, buildFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out = append(out, fromMongo(mu))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *UserRepository) Update(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	set := bson.M{"updated_at": time.Now().UTC().Unix()}

	if patch.Email != nil {
		set["email"] = strings.ToLower(*patch.Email)
	}
	if patch.Username != nil {
		set["username"] = *patch.Username
	}
	if patch.PasswordHash != nil {
		set["password_hash"] = *patch.PasswordHash
	}
	if patch.IsActive != nil {
		set["is_active"] = *patch.IsActive
	}
	if p := patch.Profile; p != nil {
		// Dotted paths merge profile fields instead of replacing the document.
		if p.Role != nil {
			set["profile.role"] = string(*p.Role)
		}
		if p.FirstName != nil {
			set["profile.first_name"] = *p.FirstName
		}
		if p.LastName != nil {
			set["profile.last_name"] = *p.LastName
		}
		if p.Phone != nil {
			set["profile.phone"] = *p.Phone
		}
		if p.Address != nil {
			set["profile.address"] = *p.Address
		}
	}

	var mu mongoUser
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailInUse
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return fromMongo(mu), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *UserRepository) ExistsWithEmail(ctx context.Context, email, excludeID string) (bool, error) {
	filter := bson.M{"email": strings.ToLower(email)}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromMongo(mu), nil
}

func buildFilter(f ports.UserFilter) bson.M {
	filter := bson.M{}
	if f.Email != "" {
		filter["email"] = regexContains(f.Email)
	}
	if f.Username != "" {
		filter["username"] = regexContains(f.Username)
	}
	if f.Role != "" {
		filter["profile.role"] = string(f.Role)
	}
	if f.IsActive != nil {
		filter["is_active"] = *f.IsActive
	}
	if f.ProfileName != "" {
		filter["$or"] = []bson.M{
			{"profile.first_name": regexContains(f.ProfileName)},
			{"profile.last_name": regexContains(f.ProfileName)},
		}
	}
	if f.SearchTerm != "" {
		filter["$or"] = []bson.M{
			{"email": regexContains(f.SearchTerm)},
			{"username": regexContains(f.SearchTerm)},
			{"profile.first_name": regexContains(f.SearchTerm)},
			{"profile.last_name": regexContains(f.SearchTerm)},
		}
	}
	return filter
}

func regexContains(term string) bson.M {
	return bson.M{"$regex": regexQuoteMeta(term), "$options": "i"}
}

// regexQuoteMeta escapes regex metacharacters so user-supplied filter terms
// are matched literally.
func regexQuoteMeta(s string) string {
	special := `\.+*?()|[]{}^$`
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fromMongo(mu mongoUser) *domain.User {
	return &domain.User{
		ID:           mu.ID,
		Email:        mu.Email,
		Username:     mu.Username,
		PasswordHash: mu.PasswordHash,
		IsActive:     mu.IsActive,
		Profile: domain.Profile{
			Role:      domain.Role(mu.Profile.Role),
			FirstName: mu.Profile.FirstName,
			LastName:  mu.Profile.LastName,
			Phone:     mu.Profile.Phone,
			Address:   mu.Profile.Address,
		},
		CreatedAt: unixToTime(mu.CreatedAt),
		UpdatedAt: unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
