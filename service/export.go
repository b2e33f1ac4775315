package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mwaldrep/salesdesk/backend/model"
)

// ErrExportUnavailable means no object storage was configured, so the
// export side channel has nowhere to write.
var ErrExportUnavailable = errors.New("export storage is not configured")

// BuildContactCSV renders contacts as a CSV document with a header row.
func BuildContactCSV(contacts []model.Contact) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "first_name", "last_name", "email", "phone", "company", "job_title", "owner", "stage", "tags", "is_active", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, c := range contacts {
		row := []string{
			c.ID,
			c.FirstName,
			c.LastName,
			c.Email,
			c.Phone,
			c.Company,
			c.JobTitle,
			c.Owner,
			string(c.Stage),
			strings.Join(c.Tags, ";"),
			strconv.FormatBool(c.IsActive),
			c.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildOpportunityCSV renders opportunities as CSV. Weighted amount and
// forecast category are derived columns computed at export time.
func BuildOpportunityCSV(opps []model.Opportunity) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "name", "company", "owner", "stage", "amount", "probability", "weighted_amount", "forecast_category", "expected_close_date", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, o := range opps {
		row := []string{
			o.ID,
			o.Name,
			o.Company,
			o.Owner,
			string(o.Stage),
			strconv.FormatFloat(o.Amount, 'f', 2, 64),
			strconv.FormatFloat(o.Probability, 'f', 0, 64),
			strconv.FormatFloat(o.WeightedAmount(), 'f', 2, 64),
			string(o.ForecastCategory()),
			o.ExpectedCloseDate.Format(time.RFC3339),
			o.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Exporter uploads CSV exports to object storage and hands back a
// presigned download URL. A nil Exporter reports ErrExportUnavailable,
// so callers don't have to special-case missing configuration.
type Exporter struct {
	objects *ObjectStore
}

func NewExporter(objects *ObjectStore) *Exporter {
	return &Exporter{objects: objects}
}

func (e *Exporter) upload(ctx context.Context, tenant, kind string, data []byte) (string, error) {
	if e == nil || e.objects == nil {
		return "", ErrExportUnavailable
	}

	objectName := fmt.Sprintf("%s/exports/%s-%s.csv", tenant, kind, time.Now().UTC().Format("20060102-150405"))
	if err := e.objects.Put(ctx, objectName, data, "text/csv"); err != nil {
		return "", err
	}
	return e.objects.PresignedURL(ctx, objectName)
}

// ExportContacts writes the contacts to object storage as CSV and
// returns a download URL.
func (e *Exporter) ExportContacts(ctx context.Context, tenant string, contacts []model.Contact) (string, error) {
	data, err := BuildContactCSV(contacts)
	if err != nil {
		return "", fmt.Errorf("build contact export: %w", err)
	}
	return e.upload(ctx, tenant, "contacts", data)
}

// ExportOpportunities writes the opportunities to object storage as CSV
// and returns a download URL.
func (e *Exporter) ExportOpportunities(ctx context.Context, tenant string, opps []model.Opportunity) (string, error) {
	data, err := BuildOpportunityCSV(opps)
	if err != nil {
		return "", fmt.Errorf("build opportunity export: %w", err)
	}
	return e.upload(ctx, tenant, "opportunities", data)
}
