// Package postgres implements the warehouse loader on gorm. All upserts run
// inside a single transaction in dependency order; conflict keys match the
// unique constraints in db/migrations.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dm "github.com/frahmantamala/flowcase-warehouse/internal/core/datamodel/warehouse"
	"github.com/frahmantamala/flowcase-warehouse/internal/transform"
	"github.com/frahmantamala/flowcase-warehouse/internal/warehouse"
)

const (
	defaultClearanceName      = "None"
	defaultAvailabilitySource = "Fake generator"
)

// Clearance rows without a parseable valid-from still need a stable conflict
// key, so they share this well-known floor date.
var defaultValidFrom = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

type Loader struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewLoader(db *gorm.DB, logger *slog.Logger) *Loader {
	return &Loader{db: db, logger: logger}
}

func (l *Loader) Load(ctx context.Context, data *transform.Result) (warehouse.DropCounts, error) {
	drops := warehouse.DropCounts{}
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s := &session{
			tx:      tx,
			logger:  l.logger,
			drops:   drops,
			cvIDs:   map[string]*int64{},
			userIDs: map[string]*int64{},
			dimIDs:  map[string]*int64{},
		}
		steps := []func() error{
			func() error { return s.upsertUsers(data.Users) },
			func() error { return s.upsertCVs(data.CVs) },
			func() error { return s.upsertTechnologies(data.Technologies) },
			func() error { return s.upsertLanguages(data.Languages) },
			func() error { return s.upsertProjectExperiences(data.ProjectExperiences) },
			func() error { return s.upsertWorkExperiences(data.WorkExperiences) },
			func() error { return s.upsertCertifications(data.Certifications) },
			func() error { return s.upsertCourses(data.Courses) },
			func() error { return s.upsertEducations(data.Educations) },
			func() error { return s.upsertPositions(data.Positions) },
			func() error { return s.upsertBlogs(data.Blogs) },
			func() error { return s.upsertCVRoles(data.CVRoles) },
			func() error { return s.upsertKeyQualifications(data.KeyQualifications) },
			func() error { return s.upsertClearances(data.Clearances) },
			func() error { return s.upsertAvailability(data.Availability) },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.logger.Info("load complete", "dropped_rows", drops.Total())
	return drops, nil
}

// session carries the per-transaction resolution caches. The caches are
// valid only because the whole load is single-writer inside one transaction.
type session struct {
	tx      *gorm.DB
	logger  *slog.Logger
	drops   warehouse.DropCounts
	cvIDs   map[string]*int64
	userIDs map[string]*int64
	dimIDs  map[string]*int64
}

func (s *session) drop(entity, reason string, keys ...any) {
	s.drops[entity]++
	args := append([]any{"entity", entity, "reason", reason}, keys...)
	s.logger.Warn("dropping row", args...)
}

// cvID resolves a business CV id to its surrogate key, memoized. nil means
// the CV is not present in this load or any earlier one.
func (s *session) cvID(businessID string) (*int64, error) {
	if businessID == "" {
		return nil, nil
	}
	if id, ok := s.cvIDs[businessID]; ok {
		return id, nil
	}
	var cv dm.CV
	err := s.tx.Select("cv_id").Where("cv_partner_cv_id = ?", businessID).First(&cv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.cvIDs[businessID] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.cvIDs[businessID] = &cv.CVID
	return &cv.CVID, nil
}

func (s *session) userIDByBusiness(businessID string) (*int64, error) {
	if businessID == "" {
		return nil, nil
	}
	cacheKey := "biz\x00" + businessID
	if id, ok := s.userIDs[cacheKey]; ok {
		return id, nil
	}
	var user dm.User
	err := s.tx.Select("user_id").Where("cv_partner_user_id = ?", businessID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.userIDs[cacheKey] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.userIDs[cacheKey] = &user.UserID
	return &user.UserID, nil
}

// resolveUser walks the identity fallback chain: email (case-insensitive),
// then upn (case-insensitive), then external id. First match wins.
func (s *session) resolveUser(email, upn, externalID string) (*int64, error) {
	cacheKey := "ident\x00" + email + "\x00" + upn + "\x00" + externalID
	if id, ok := s.userIDs[cacheKey]; ok {
		return id, nil
	}
	lookups := []struct {
		where string
		value string
	}{
		{"lower(email) = lower(?)", email},
		{"lower(upn) = lower(?)", upn},
		{"external_user_id = ?", externalID},
	}
	for _, lookup := range lookups {
		if lookup.value == "" {
			continue
		}
		var user dm.User
		err := s.tx.Select("user_id").Where(lookup.where, lookup.value).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		s.userIDs[cacheKey] = &user.UserID
		return &user.UserID, nil
	}
	s.userIDs[cacheKey] = nil
	return nil, nil
}

// ensureDim is the get-or-create for dimension tables: insert-or-ignore by
// unique natural name, then read back the assigned id. Blank names resolve
// to nil without writing.
func (s *session) ensureDim(table, idColumn, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	cacheKey := table + "\x00" + name
	if id, ok := s.dimIDs[cacheKey]; ok {
		return id, nil
	}
	insert := fmt.Sprintf("INSERT INTO %s (name) VALUES (?) ON CONFLICT (name) DO NOTHING", table)
	if err := s.tx.Exec(insert, name).Error; err != nil {
		return nil, err
	}
	var id int64
	query := fmt.Sprintf("SELECT %s FROM %s WHERE name = ?", idColumn, table)
	if err := s.tx.Raw(query, name).Scan(&id).Error; err != nil {
		return nil, err
	}
	s.dimIDs[cacheKey] = &id
	return &id, nil
}

// dedupeLast collapses rows sharing a conflict key, keeping the last
// occurrence. A batched insert over the result is observably identical to
// upserting the input one row at a time, and it sidesteps the "row affected
// twice" error a single statement would hit on duplicate keys.
func dedupeLast[T any](rows []T, key func(T) string) []T {
	out := make([]T, 0, len(rows))
	index := make(map[string]int, len(rows))
	for _, row := range rows {
		k := key(row)
		if at, ok := index[k]; ok {
			out[at] = row
			continue
		}
		index[k] = len(out)
		out = append(out, row)
	}
	return out
}

func (s *session) upsert(conflictColumns []string, updateColumns []string, batch any) error {
	columns := make([]clause.Column, len(conflictColumns))
	for i, name := range conflictColumns {
		columns[i] = clause.Column{Name: name}
	}
	return s.tx.Clauses(clause.OnConflict{
		Columns:   columns,
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(batch).Error
}
