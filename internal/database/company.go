package database

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"lead-rag-platform/internal/logger"
	"lead-rag-platform/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CompanyStoreManager is the explicit registry of per-company database
// handles. Handles are created on first use and torn down together; nothing
// here is process-global.
type CompanyStoreManager struct {
	client        *mongo.Client
	controlDBName string
	databases     map[string]*mongo.Database
	mu            sync.RWMutex
}

func NewCompanyStoreManager(client *mongo.Client, controlDBName string) *CompanyStoreManager {
	return &CompanyStoreManager{
		client:        client,
		controlDBName: controlDBName,
		databases:     make(map[string]*mongo.Database),
	}
}

// GetCompanyDB returns the isolated database for a company, creating the
// handle and its indexes on first use.
func (m *CompanyStoreManager) GetCompanyDB(companyName string) (*mongo.Database, error) {
	key := normalizeCompanyName(companyName)
	if key == "" {
		return nil, fmt.Errorf("company name is empty")
	}

	m.mu.RLock()
	if db, exists := m.databases[key]; exists {
		m.mu.RUnlock()
		return db, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if db, exists := m.databases[key]; exists {
		return db, nil
	}

	db := m.client.Database("leads_" + key)
	if err := m.createCompanyIndexes(db); err != nil {
		return nil, err
	}

	m.databases[key] = db
	logger.Info("company database initialized", "company", companyName, "database", db.Name())
	return db, nil
}

func (m *CompanyStoreManager) createCompanyIndexes(db *mongo.Database) error {
	ctx := context.Background()

	leadsCol := db.Collection("leads")
	_, err := leadsCol.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "assignedTo", Value: 1}}},
		{Keys: bson.D{{Key: "updatedAt", Value: -1}}},
	})
	if err != nil {
		return err
	}

	chunksCol := db.Collection("lead_chunks")
	_, err = chunksCol.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "doc_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "group_key", Value: 1}}},
	})
	return err
}

// FetchLeads streams every lead document for a company into plain maps,
// backfilling the id field from the store's own document identifier. Records
// are returned in the store's natural order.
func (m *CompanyStoreManager) FetchLeads(ctx context.Context, companyName string) ([]models.LeadRecord, error) {
	db, err := m.GetCompanyDB(companyName)
	if err != nil {
		return nil, err
	}

	cursor, err := db.Collection("leads").Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leads for %s: %w", companyName, err)
	}
	defer cursor.Close(ctx)

	var leads []models.LeadRecord
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			logger.Warn("skipping undecodable lead document", "company", companyName, "error", err)
			continue
		}
		lead := normalizeValue(doc).(models.LeadRecord)
		if _, ok := lead["id"]; !ok {
			lead["id"] = documentID(doc["_id"])
		}
		delete(lead, "_id")
		leads = append(leads, lead)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch leads for %s: %w", companyName, err)
	}

	logger.Info("fetched leads", "company", companyName, "count", len(leads))
	return leads, nil
}

// RegisterCompany records a company in the control registry so scheduled
// reindexing and listing can find it.
func (m *CompanyStoreManager) RegisterCompany(ctx context.Context, companyName string) error {
	companies := m.client.Database(m.controlDBName).Collection("companies")
	_, err := companies.UpdateOne(ctx,
		bson.M{"name": companyName},
		bson.M{"$setOnInsert": bson.M{"name": companyName, "registered_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	return err
}

// MarkIndexed stamps the registry with the outcome of a reindex run.
func (m *CompanyStoreManager) MarkIndexed(ctx context.Context, companyName string, documents int) error {
	companies := m.client.Database(m.controlDBName).Collection("companies")
	_, err := companies.UpdateOne(ctx,
		bson.M{"name": companyName},
		bson.M{"$set": bson.M{"last_indexed_at": time.Now().UTC(), "last_document_count": documents}},
	)
	return err
}

// Companies lists registered company names in registration order.
func (m *CompanyStoreManager) Companies(ctx context.Context) ([]string, error) {
	companies := m.client.Database(m.controlDBName).Collection("companies")
	cursor, err := companies.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "registered_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var doc struct {
			Name string `bson:"name"`
		}
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		names = append(names, doc.Name)
	}
	return names, cursor.Err()
}

// Teardown releases every handle and disconnects the underlying client.
func (m *CompanyStoreManager) Teardown(ctx context.Context) error {
	m.mu.Lock()
	m.databases = make(map[string]*mongo.Database)
	m.mu.Unlock()
	return m.client.Disconnect(ctx)
}

// normalizeCompanyName maps a display name onto a database-safe key.
func normalizeCompanyName(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	return key
}

// normalizeValue rewrites BSON container and temporal types into the plain
// map/slice/time shapes the processing core works on.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case bson.M:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeValue(item)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(v))
		for _, elem := range v {
			out[elem.Key] = normalizeValue(elem.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	case primitive.DateTime:
		return v.Time().UTC()
	case primitive.ObjectID:
		return v.Hex()
	default:
		return value
	}
}

func documentID(raw any) string {
	if oid, ok := raw.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(raw)
}
