// Package ingest turns parsed manifest records into persisted containers
// and operation rows for a workset.
package ingest

import (
	"log/slog"
	"sort"

	"github.com/ccgmariano/bayplan/baplie"
	"github.com/ccgmariano/bayplan/repository"
	"github.com/ccgmariano/bayplan/repository/models"
	"github.com/ccgmariano/bayplan/stowage"
)

// Store is the subset of the record store the coordinator writes to.
type Store interface {
	UpsertContainer(c *models.Container) *repository.RepositoryError
	AppendOperation(worksetID uint, operationType string, bay int, area string) (*models.Operation, *repository.RepositoryError)
	CreateEdiImport(imp *models.EdiImport) *repository.RepositoryError
	CreateStowageUnits(units []models.StowageUnit) *repository.RepositoryError
}

// Meta describes the import being run, for the audit trail.
type Meta struct {
	ImportID string
	FileName string
	ByteSize int
}

// Summary reports what an import produced. Saved can be lower than Parsed
// when records lacked a usable stowage position.
type Summary struct {
	ImportID     string `json:"import_id"`
	Parsed       int    `json:"containers_parsed"`
	Saved        int    `json:"containers_saved"`
	BayAreaPairs int    `json:"bays_with_ops"`
}

type bayArea struct {
	bay  int
	area string
}

// Coordinator orchestrates manifest parse output into the record store.
type Coordinator struct {
	store  Store
	logger *slog.Logger
}

func NewCoordinator(store Store, logger *slog.Logger) *Coordinator {
	return &Coordinator{store: store, logger: logger}
}

// Run upserts one container per positioned record and appends one
// operation row per distinct (bay, area) pair observed, then writes the
// import audit trail. Upserts are idempotent with respect to repeated
// imports of the same manifest and never touch container status. The run
// is non-transactional: the first store error aborts the remainder and
// earlier writes stand.
func (c *Coordinator) Run(worksetID uint, direction baplie.Direction, records []baplie.StowageRecord, meta Meta) (*Summary, *repository.RepositoryError) {
	units := make([]models.StowageUnit, 0, len(records))
	pairs := map[bayArea]struct{}{}
	saved := 0

	for _, rec := range records {
		units = append(units, models.StowageUnit{
			EdiImportID: meta.ImportID,
			ContainerNo: rec.ContainerNo,
			ISOType:     rec.ISOType,
			Bay:         rec.Bay,
			Row:         rec.Row,
			Tier:        rec.Tier,
			WeightKg:    rec.WeightKg,
		})

		// Position is required for stowage; records without one are part
		// of the parse count but never reach the container table.
		if !rec.HasPosition() {
			continue
		}

		area := stowage.AreaForTier(*rec.Tier)
		container := models.Container{
			WorksetID:   worksetID,
			ContainerNo: rec.ContainerNo,
			ISOType:     rec.ISOType,
			Bay:         *rec.Bay,
			Row:         *rec.Row,
			Tier:        *rec.Tier,
			Area:        area,
		}
		if repoErr := c.store.UpsertContainer(&container); repoErr != nil {
			c.logger.Error("Aborting import on container upsert failure",
				"container_no", rec.ContainerNo, "detail", repoErr.Detail)
			return nil, repoErr
		}
		saved++
		pairs[bayArea{bay: *rec.Bay, area: area}] = struct{}{}
	}

	for _, pair := range sortedPairs(pairs) {
		if _, repoErr := c.store.AppendOperation(worksetID, string(direction), pair.bay, pair.area); repoErr != nil {
			return nil, repoErr
		}
	}

	imp := models.EdiImport{
		ID:               meta.ImportID,
		WorksetID:        worksetID,
		FileName:         meta.FileName,
		OperationType:    string(direction),
		ByteSize:         meta.ByteSize,
		ContainersParsed: len(records),
		ContainersSaved:  saved,
	}
	if repoErr := c.store.CreateEdiImport(&imp); repoErr != nil {
		return nil, repoErr
	}
	if repoErr := c.store.CreateStowageUnits(units); repoErr != nil {
		return nil, repoErr
	}

	c.logger.Info("Import completed",
		"import_id", meta.ImportID,
		"workset_id", worksetID,
		"parsed", len(records),
		"saved", saved,
		"bay_area_pairs", len(pairs),
	)

	return &Summary{
		ImportID:     meta.ImportID,
		Parsed:       len(records),
		Saved:        saved,
		BayAreaPairs: len(pairs),
	}, nil
}

// sortedPairs orders the distinct pairs by bay then area so operation
// rows append deterministically.
func sortedPairs(pairs map[bayArea]struct{}) []bayArea {
	out := make([]bayArea, 0, len(pairs))
	for p := range pairs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].bay != out[j].bay {
			return out[i].bay < out[j].bay
		}
		return out[i].area < out[j].area
	})
	return out
}
