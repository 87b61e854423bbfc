package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ccgmariano/bayplan/archive"
	"github.com/ccgmariano/bayplan/baplie"
	"github.com/ccgmariano/bayplan/ingest"
	"github.com/ccgmariano/bayplan/repository"
	"github.com/ccgmariano/bayplan/stowage"
)

const maxManifestBytes = 32 << 20

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

func (ws *WebServer) handleDBHealth(w http.ResponseWriter, r *http.Request) {
	if repoErr := ws.store.Ping(); repoErr != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"ok":    false,
			"error": repoErr.Detail,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type createVoyageBody struct {
	VesselName string `json:"vessel_name"`
	VoyageCode string `json:"voyage_code"`
}

func (ws *WebServer) handleCreateVoyage(w http.ResponseWriter, r *http.Request) {
	var body createVoyageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, "Invalid body format: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if body.VesselName == "" || body.VoyageCode == "" {
		JSONError(w, "vessel_name and voyage_code are required", http.StatusBadRequest)
		return
	}

	voyage, repoErr := ws.store.CreateVoyage(body.VesselName, body.VoyageCode)
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusCreated, voyage)
}

type createWorksetBody struct {
	VoyageID uint `json:"voyage_id"`
}

func (ws *WebServer) handleCreateWorkset(w http.ResponseWriter, r *http.Request) {
	var body createWorksetBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, "Invalid body format: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if body.VoyageID == 0 {
		JSONError(w, "voyage_id is required", http.StatusBadRequest)
		return
	}

	workset, repoErr := ws.store.CreateWorkset(body.VoyageID)
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusCreated, workset)
}

func (ws *WebServer) handleGetWorkset(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUintParam(chi.URLParam(r, "worksetID"))
	if !ok {
		JSONError(w, "worksetID must be a positive integer", http.StatusBadRequest)
		return
	}

	workset, repoErr := ws.store.GetWorkset(id)
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, workset)
}

func (ws *WebServer) handleImportEDI(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxManifestBytes); err != nil {
		JSONError(w, "Invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	vesselName := r.FormValue("vessel_name")
	voyageCode := r.FormValue("voyage_code")
	operationType := r.FormValue("operation_type")
	portCode := r.FormValue("port_code")

	if vesselName == "" || voyageCode == "" || operationType == "" {
		JSONError(w, "vessel_name, voyage_code and operation_type are required", http.StatusBadRequest)
		return
	}
	direction, ok := baplie.ParseDirection(operationType)
	if !ok {
		JSONError(w, "operation_type must be LOAD or DISCHARGE", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		JSONError(w, "file is required (multipart field name: file)", http.StatusBadRequest)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		JSONError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}

	voyage, repoErr := ws.store.CreateVoyage(vesselName, voyageCode)
	if repoErr != nil {
		ws.writeImportError(w, repoErr)
		return
	}
	workset, repoErr := ws.store.CreateWorkset(voyage.ID)
	if repoErr != nil {
		ws.writeImportError(w, repoErr)
		return
	}

	importID := uuid.NewString()
	if err := ws.archive.Put(importID, payload); err != nil {
		ws.logger.Error("Failed to archive manifest", "import_id", importID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}

	records := baplie.Parse(string(payload), baplie.ParseOptions{
		Direction: direction,
		PortCode:  portCode,
	})

	summary, repoErr := ws.coordinator.Run(workset.ID, direction, records, ingest.Meta{
		ImportID: importID,
		FileName: header.Filename,
		ByteSize: len(payload),
	})
	if repoErr != nil {
		ws.writeImportError(w, repoErr)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"ok":                true,
		"voyage_id":         voyage.ID,
		"workset_id":        workset.ID,
		"import_id":         summary.ImportID,
		"containers_parsed": summary.Parsed,
		"containers_saved":  summary.Saved,
		"bays_with_ops":     summary.BayAreaPairs,
	})
}

func (ws *WebServer) handleRawImport(w http.ResponseWriter, r *http.Request) {
	importID := chi.URLParam(r, "importID")
	payload, err := ws.archive.Get(importID)
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			JSONError(w, "Import not found", http.StatusNotFound)
			return
		}
		JSONError(w, "Failed to read archive: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(payload)
}

type opsBayItem struct {
	Bay  int    `json:"bay"`
	Area string `json:"area"`
}

func (ws *WebServer) handleOpsBays(w http.ResponseWriter, r *http.Request) {
	worksetID, ok := parseUintParam(r.URL.Query().Get("workset_id"))
	operationType := r.URL.Query().Get("operation_type")
	if !ok || operationType == "" {
		JSONError(w, "workset_id and operation_type are required", http.StatusBadRequest)
		return
	}
	if _, valid := baplie.ParseDirection(operationType); !valid {
		JSONError(w, "operation_type must be LOAD or DISCHARGE", http.StatusBadRequest)
		return
	}

	ops, repoErr := ws.store.ListOperations(worksetID, operationType)
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}

	// Collapse raw physical bays onto their odd display bay so an
	// even/odd pair never shows as two separate bays.
	seen := map[opsBayItem]struct{}{}
	items := make([]opsBayItem, 0, len(ops))
	for _, op := range ops {
		displayBay, valid := stowage.DisplayBay(op.Bay)
		if !valid {
			continue
		}
		item := opsBayItem{Bay: displayBay, Area: op.Area}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Bay != items[j].Bay {
			return items[i].Bay < items[j].Bay
		}
		return items[i].Area < items[j].Area
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"workset_id":     worksetID,
		"operation_type": operationType,
		"items":          items,
	})
}

func (ws *WebServer) handleBayGrid(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	worksetID, ok := parseUintParam(query.Get("workset_id"))
	bayStr := query.Get("bay")
	area := query.Get("area")
	if !ok || bayStr == "" || area == "" {
		JSONError(w, "workset_id, bay and area are required", http.StatusBadRequest)
		return
	}
	if !stowage.ValidArea(area) {
		JSONError(w, "area must be DECK or HOLD", http.StatusBadRequest)
		return
	}
	bay, err := strconv.Atoi(bayStr)
	if err != nil || bay <= 0 {
		JSONError(w, "bay must be a positive integer", http.StatusBadRequest)
		return
	}

	bayGroup := stowage.BayGroup(bay)
	if len(bayGroup) == 0 {
		JSONError(w, "invalid bay", http.StatusBadRequest)
		return
	}

	containers, repoErr := ws.store.ListContainers(worksetID, bayGroup, area)
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}

	cells := make([]stowage.GridCell, 0, len(containers))
	for _, c := range containers {
		cells = append(cells, stowage.GridCell{
			ContainerNo: c.ContainerNo,
			ISOType:     c.ISOType,
			Status:      c.Status,
			DoneAt:      c.DoneAt,
			Bay:         c.Bay,
			Row:         c.Row,
			Tier:        c.Tier,
		})
	}

	grid := stowage.BuildGrid(cells, stowage.GridOptions{
		IncludeCenterRow: query.Get("center_row") == "true",
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"workset_id":  worksetID,
		"bay":         bay,
		"bay_group":   bayGroup,
		"area":        area,
		"stats":       grid.Stats,
		"rows_order":  grid.RowsOrder,
		"tiers_order": grid.TiersOrder,
		"grid":        grid.Cells,
	})
}

type containerStatusBody struct {
	WorksetID   uint   `json:"workset_id"`
	ContainerNo string `json:"container_no"`
}

func (ws *WebServer) handleContainerDone(w http.ResponseWriter, r *http.Request) {
	ws.setContainerStatus(w, r, true)
}

func (ws *WebServer) handleContainerUndone(w http.ResponseWriter, r *http.Request) {
	ws.setContainerStatus(w, r, false)
}

func (ws *WebServer) setContainerStatus(w http.ResponseWriter, r *http.Request, done bool) {
	var body containerStatusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, "Invalid body format: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if body.WorksetID == 0 || body.ContainerNo == "" {
		JSONError(w, "workset_id and container_no are required", http.StatusBadRequest)
		return
	}

	container, repoErr := ws.store.SetContainerStatus(body.WorksetID, body.ContainerNo, done)
	if repoErr != nil {
		if repoErr.NotFound() {
			JSONError(w, "container not found for this workset_id", http.StatusNotFound)
			return
		}
		ws.writeRepoError(w, repoErr)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"container": container,
	})
}

var importFormHTML = []byte(`<!doctype html>
<html><body>
<h2>Import EDI manifest</h2>
<form id="f">
  <input name="vessel_name" placeholder="Vessel name"><br>
  <input name="voyage_code" placeholder="Voyage code"><br>
  <select name="operation_type">
    <option>DISCHARGE</option>
    <option>LOAD</option>
  </select><br>
  <input name="port_code" placeholder="Port code (optional filter)"><br>
  <input type="file" name="file"><br>
  <button>Import</button>
</form>
<pre id="o"></pre>
<script>
  f.onsubmit = async (e) => {
    e.preventDefault();
    const fd = new FormData(f);
    const r = await fetch('/import/edi', { method: 'POST', body: fd });
    o.textContent = await r.text();
  };
</script>
</body></html>
`)

func (ws *WebServer) handleImportForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(importFormHTML)
}

// writeRepoError maps repository error codes onto HTTP statuses.
func (ws *WebServer) writeRepoError(w http.ResponseWriter, repoErr *repository.RepositoryError) {
	switch repoErr.Code {
	case repository.ErrCodeEntityNotFound:
		JSONError(w, repoErr.Message, http.StatusNotFound)
	case repository.PgErrForeignKeyViolation:
		JSONError(w, repoErr.Detail, http.StatusBadRequest)
	case repository.PgErrUniqueViolation:
		JSONError(w, repoErr.Detail, http.StatusConflict)
	default:
		ws.logger.Error("Repository error", "code", repoErr.Code, "detail", repoErr.Detail)
		JSONError(w, repoErr.Message, http.StatusInternalServerError)
	}
}

// writeImportError reports a failed import. Earlier writes of the same
// import are not rolled back.
func (ws *WebServer) writeImportError(w http.ResponseWriter, repoErr *repository.RepositoryError) {
	ws.logger.Error("Import failed", "code", repoErr.Code, "detail", repoErr.Detail)
	writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"ok":    false,
		"error": repoErr.Message,
	})
}

func parseUintParam(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
