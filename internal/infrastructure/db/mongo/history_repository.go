package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devcopilot/assistant-api/internal/core/domain"
)

const (
	snippetCollection    = "code_snippets"
	debugCollection      = "debug_sessions"
	scanCollection       = "security_scans"
	preferenceCollection = "user_preferences"
)

// ── Snippets ──────────────────────────────────────────────────────────────────

type SnippetRepository struct {
	coll *mongo.Collection
}

func NewSnippetRepository(db *mongo.Database) *SnippetRepository {
	return &SnippetRepository{coll: db.Collection(snippetCollection)}
}

type snippetDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Prompt      string             `bson:"prompt"`
	Code        string             `bson:"code"`
	Language    string             `bson:"language"`
	Explanation string             `bson:"explanation,omitempty"`
	UserID      string             `bson:"user_id,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
}

func (r *SnippetRepository) Insert(ctx context.Context, snippet *domain.Snippet) (string, error) {
	doc := snippetDoc{
		Prompt:      snippet.Prompt,
		Code:        snippet.Code,
		Language:    snippet.Language,
		Explanation: snippet.Explanation,
		UserID:      snippet.UserID,
		CreatedAt:   snippet.CreatedAt.Unix(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert snippet: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// All returns every stored snippet, oldest first. Used to warm the search
// index at startup.
func (r *SnippetRepository) All(ctx context.Context) ([]domain.Snippet, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, fmt.Errorf("list snippets: %w", err)
	}
	defer cur.Close(ctx)

	var snippets []domain.Snippet
	for cur.Next(ctx) {
		var doc snippetDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode snippet: %w", err)
		}
		snippets = append(snippets, domain.Snippet{
			ID:          doc.ID.Hex(),
			Prompt:      doc.Prompt,
			Code:        doc.Code,
			Language:    doc.Language,
			Explanation: doc.Explanation,
			UserID:      doc.UserID,
			CreatedAt:   time.Unix(doc.CreatedAt, 0).UTC(),
		})
	}
	return snippets, cur.Err()
}

// ── Debug sessions ────────────────────────────────────────────────────────────

type DebugSessionRepository struct {
	coll *mongo.Collection
}

func NewDebugSessionRepository(db *mongo.Database) *DebugSessionRepository {
	return &DebugSessionRepository{coll: db.Collection(debugCollection)}
}

type debugSessionDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id,omitempty"`
	OriginalCode string             `bson:"original_code"`
	FixedCode    string             `bson:"fixed_code,omitempty"`
	Language     string             `bson:"language"`
	ErrorMessage string             `bson:"error_message,omitempty"`
	Suggestions  []string           `bson:"suggestions"`
	CreatedAt    int64              `bson:"created_at"`
}

func (r *DebugSessionRepository) Insert(ctx context.Context, session *domain.DebugSession) (string, error) {
	doc := debugSessionDoc{
		UserID:       session.UserID,
		OriginalCode: session.OriginalCode,
		FixedCode:    session.FixedCode,
		Language:     session.Language,
		ErrorMessage: session.ErrorMessage,
		Suggestions:  session.Suggestions,
		CreatedAt:    session.CreatedAt.Unix(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert debug session: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// ── Security scans ────────────────────────────────────────────────────────────

type ScanRepository struct {
	coll *mongo.Collection
}

func NewScanRepository(db *mongo.Database) *ScanRepository {
	return &ScanRepository{coll: db.Collection(scanCollection)}
}

type scanIssueDoc struct {
	Type           string `bson:"type"`
	Severity       string `bson:"severity"`
	Line           int    `bson:"line"`
	Description    string `bson:"description"`
	Recommendation string `bson:"recommendation"`
}

type scanDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id,omitempty"`
	Code        string             `bson:"code"`
	Language    string             `bson:"language"`
	Issues      []scanIssueDoc     `bson:"issues"`
	OverallRisk string             `bson:"overall_risk"`
	CreatedAt   int64              `bson:"created_at"`
}

func (r *ScanRepository) Insert(ctx context.Context, record *domain.SecurityScanRecord) (string, error) {
	issues := make([]scanIssueDoc, 0, len(record.Issues))
	for _, issue := range record.Issues {
		issues = append(issues, scanIssueDoc{
			Type:           issue.Type,
			Severity:       issue.Severity,
			Line:           issue.Line,
			Description:    issue.Description,
			Recommendation: issue.Recommendation,
		})
	}

	doc := scanDoc{
		UserID:      record.UserID,
		Code:        record.Code,
		Language:    record.Language,
		Issues:      issues,
		OverallRisk: record.OverallRisk,
		CreatedAt:   record.CreatedAt.Unix(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert scan: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// ── Preferences ───────────────────────────────────────────────────────────────

type PreferenceRepository struct {
	coll *mongo.Collection
}

func NewPreferenceRepository(db *mongo.Database) *PreferenceRepository {
	return &PreferenceRepository{coll: db.Collection(preferenceCollection)}
}

type preferenceDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Values    map[string]string  `bson:"values"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *PreferenceRepository) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	var doc preferenceDoc
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return &domain.Preferences{UserID: userID, Values: map[string]string{}}, nil
		}
		return nil, fmt.Errorf("find preferences: %w", err)
	}
	return &domain.Preferences{
		UserID:    doc.UserID,
		Values:    doc.Values,
		CreatedAt: unixToTime(doc.CreatedAt),
		UpdatedAt: unixToTime(doc.UpdatedAt),
	}, nil
}

func (r *PreferenceRepository) Upsert(ctx context.Context, prefs *domain.Preferences) error {
	now := time.Now().UTC().Unix()
	update := bson.M{
		"$set": bson.M{
			"values":     prefs.Values,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"user_id":    prefs.UserID,
			"created_at": now,
		},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"user_id": prefs.UserID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}
