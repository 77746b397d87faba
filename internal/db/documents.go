package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"github.com/jobfinder/job-assistant/internal/types"
)

// NearestDocuments runs the vector kNN query: the k documents closest to vec
// by cosine distance, scored as 1 - distance. When onlyActive is set,
// documents of expired jobs are excluded.
func (db *DB) NearestDocuments(ctx context.Context, vec []float32, k int, onlyActive bool) ([]types.RetrievedDocument, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT d.id, d.job_id, d.doc_type, COALESCE(d.section_type, ''), d.chunk_index,
		        d.content, d.metadata, d.is_active,
		        1 - (d.embedding <=> $1) AS score
		 FROM rag_job_documents d
		 WHERE ($2 = FALSE OR d.is_active)
		 ORDER BY d.embedding <=> $1
		 LIMIT $3`,
		pgvector.NewVector(vec), onlyActive, k,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query nearest documents: %w", err)
	}
	defer rows.Close()

	var results []types.RetrievedDocument
	for rows.Next() {
		var r types.RetrievedDocument
		var metadataJSON []byte
		if err := rows.Scan(&r.Document.ID, &r.Document.JobID, &r.Document.DocType,
			&r.Document.SectionType, &r.Document.ChunkIndex,
			&r.Document.Content, &metadataJSON, &r.Document.IsActive, &r.Score); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		r.Document.Metadata = db.decodeMetadata(metadataJSON, r.Document.ID)
		results = append(results, r)
	}
	return results, rows.Err()
}

// DocumentsByJob fetches up to limit documents of one job, overview first,
// then sections in their indexed order. Used for pinning the currently
// viewed job.
func (db *DB) DocumentsByJob(ctx context.Context, jobID int64, limit int) ([]types.Document, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT d.id, d.job_id, d.doc_type, COALESCE(d.section_type, ''), d.chunk_index,
		        d.content, d.metadata, d.is_active
		 FROM rag_job_documents d
		 WHERE d.job_id = $1
		 ORDER BY (d.doc_type <> 'job_overview'), d.id
		 LIMIT $2`,
		jobID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents for job %d: %w", jobID, err)
	}
	defer rows.Close()

	var docs []types.Document
	for rows.Next() {
		var d types.Document
		var metadataJSON []byte
		if err := rows.Scan(&d.ID, &d.JobID, &d.DocType, &d.SectionType, &d.ChunkIndex,
			&d.Content, &metadataJSON, &d.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		d.Metadata = db.decodeMetadata(metadataJSON, d.ID)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// decodeMetadata parses a document's stored metadata. Corrupt metadata
// degrades to an empty snapshot with a warning instead of failing the whole
// result set; the fail-open filters treat missing metadata as a pass.
func (db *DB) decodeMetadata(raw []byte, docID int64) types.JobSnapshot {
	var meta types.JobSnapshot
	if len(raw) == 0 {
		return meta
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		db.log.Warn("document metadata is not valid JSON, treating as empty",
			zap.Int64("doc_id", docID), zap.Error(err))
		return types.JobSnapshot{}
	}
	return meta
}

// ReplaceJobDocuments atomically replaces all documents of a job. The delete
// and inserts run inside one transaction, so concurrent readers either see
// the old document set or the new one, never a partial state.
func (db *DB) ReplaceJobDocuments(ctx context.Context, jobID int64, docs []types.Document) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM rag_job_documents WHERE job_id = $1`, jobID); err != nil {
		return fmt.Errorf("failed to delete old documents for job %d: %w", jobID, err)
	}

	for _, d := range docs {
		metadataJSON, err := json.Marshal(d.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata for job %d: %w", jobID, err)
		}

		var sectionType *string
		if d.SectionType != "" {
			s := string(d.SectionType)
			sectionType = &s
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO rag_job_documents
			     (job_id, doc_type, section_type, chunk_index, content, metadata, embedding, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			d.JobID, d.DocType, sectionType, d.ChunkIndex, d.Content,
			metadataJSON, pgvector.NewVector(d.Embedding), d.Metadata.IsActive,
		)
		if err != nil {
			return fmt.Errorf("failed to insert document for job %d: %w", jobID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit document replace for job %d: %w", jobID, err)
	}
	return nil
}

// DeleteJobDocuments removes all documents of a job.
func (db *DB) DeleteJobDocuments(ctx context.Context, jobID int64) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM rag_job_documents WHERE job_id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete documents for job %d: %w", jobID, err)
	}
	return nil
}

// CountJobDocuments returns how many documents a job currently has, by type.
func (db *DB) CountJobDocuments(ctx context.Context, jobID int64) (overview, section int, err error) {
	err = db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE doc_type = 'job_overview'),
		        COUNT(*) FILTER (WHERE doc_type = 'job_section')
		 FROM rag_job_documents WHERE job_id = $1`,
		jobID,
	).Scan(&overview, &section)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("failed to count documents for job %d: %w", jobID, err)
	}
	return overview, section, nil
}
