package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hexbenjamin/webster"
)

// Compile-time interface verification.
var _ webster.SiteService = (*SiteService)(nil)

// SiteService implements webster.SiteService using SQLite.
type SiteService struct {
	db *DB
}

// NewSiteService creates a new SiteService.
func NewSiteService(db *DB) *SiteService {
	return &SiteService{db: db}
}

// CreateSite creates a new site. Site names are unique; creating a
// site under an existing name returns ECONFLICT.
func (s *SiteService) CreateSite(ctx context.Context, site *webster.Site) error {
	if err := site.Validate(); err != nil {
		return err
	}

	if err := s.checkNameAvailable(ctx, site.Name, ""); err != nil {
		return err
	}

	site.ID = uuid.New().String()
	now := time.Now().UTC()
	site.CreatedAt = now
	site.UpdatedAt = now

	includePaths, err := encodeStrings(site.IncludePaths)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sites (id, name, root_url, include_paths, depth, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, site.ID, site.Name, site.RootURL, includePaths, site.Depth,
		site.CreatedAt.Format(time.RFC3339), site.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindSiteByID retrieves a site by ID.
func (s *SiteService) FindSiteByID(ctx context.Context, id string) (*webster.Site, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, root_url, include_paths, depth, created_at, updated_at
		FROM sites
		WHERE id = ?
	`, id)

	site, err := scanSite(row.Scan)
	if err == sql.ErrNoRows {
		return nil, webster.Errorf(webster.ENOTFOUND, "site not found")
	}
	if err != nil {
		return nil, err
	}
	return site, nil
}

// FindSites retrieves sites matching the filter, newest first.
func (s *SiteService) FindSites(ctx context.Context, filter webster.SiteFilter) ([]*webster.Site, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, root_url, include_paths, depth, created_at, updated_at FROM sites WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []*webster.Site
	for rows.Next() {
		site, err := scanSite(rows.Scan)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}

	return sites, rows.Err()
}

// UpdateSite updates an existing site.
func (s *SiteService) UpdateSite(ctx context.Context, id string, upd webster.SiteUpdate) (*webster.Site, error) {
	site, err := s.FindSiteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		site.Name = *upd.Name
	}
	if upd.RootURL != nil {
		site.RootURL = *upd.RootURL
	}
	if upd.IncludePaths != nil {
		site.IncludePaths = *upd.IncludePaths
	}
	if upd.Depth != nil {
		site.Depth = *upd.Depth
	}

	if err := site.Validate(); err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if err := s.checkNameAvailable(ctx, site.Name, id); err != nil {
			return nil, err
		}
	}

	site.UpdatedAt = time.Now().UTC()

	includePaths, err := encodeStrings(site.IncludePaths)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE sites
		SET name = ?, root_url = ?, include_paths = ?, depth = ?, updated_at = ?
		WHERE id = ?
	`, site.Name, site.RootURL, includePaths, site.Depth,
		site.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return site, nil
}

// DeleteSite permanently removes a site. Associated documents, chunks,
// and conversations are removed via foreign key cascades.
func (s *SiteService) DeleteSite(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sites WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return webster.Errorf(webster.ENOTFOUND, "site not found")
	}

	return nil
}

// checkNameAvailable returns ECONFLICT when a site other than excludeID
// already uses the name.
func (s *SiteService) checkNameAvailable(ctx context.Context, name, excludeID string) error {
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM sites WHERE name = ? AND id != ?", name, excludeID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	return webster.Errorf(webster.ECONFLICT, "site %q already exists", name)
}

// scanSite reads one site row using the given scan function.
func scanSite(scan func(...any) error) (*webster.Site, error) {
	var site webster.Site
	var includePaths, createdAt, updatedAt string

	if err := scan(&site.ID, &site.Name, &site.RootURL, &includePaths, &site.Depth,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	site.IncludePaths, err = decodeStrings(includePaths)
	if err != nil {
		return nil, err
	}
	site.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	site.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at")
	if err != nil {
		return nil, err
	}

	return &site, nil
}
