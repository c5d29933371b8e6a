package web

import (
	"net/http"

	"lessonbook/internal/application/listutil"
	"lessonbook/internal/application/orchestrators"
	"lessonbook/internal/application/projections"
	"lessonbook/internal/domain/errs"
	"lessonbook/internal/domain/participant"
)

// maxImportBytes bounds participant workbook uploads.
const maxImportBytes = 5 << 20

type enrollRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Contact  string `json:"contact" validate:"max=200"`
}

// handleParticipants handles GET/POST for /api/participants
func handleParticipants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		ps, err := projections.QueryListParticipants(ctx, projections.ListParticipantsQuery{
			TeacherID: tid,
			CourseID:  r.URL.Query().Get("course_id"),
		}, projections.ListParticipantsDeps{
			CourseStore:      stores.CourseStore,
			ParticipantStore: stores.ParticipantStore,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toParticipantViews(ps))

	case http.MethodPost:
		var req enrollRequest
		if err := bind(r, &req); err != nil {
			writeError(w, err)
			return
		}
		p, err := orchestrators.ExecuteEnrollParticipant(ctx, orchestrators.EnrollParticipantInput{
			TeacherID: tid,
			CourseID:  req.CourseID,
			Name:      req.Name,
			Contact:   req.Contact,
		}, orchestrators.EnrollParticipantDeps{
			CourseStore:      stores.CourseStore,
			ParticipantStore: stores.ParticipantStore,
			GenerateID:       generateID,
			Now:              timeNow,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toParticipantViews([]participant.Participant{p})[0])

	default:
		methodNotAllowed(w)
	}
}

// handleParticipantRoster handles GET /api/participants/roster
// (course_id, q, sort, dir, page, per_page).
func handleParticipantRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	roster, err := projections.QueryParticipantRoster(r.Context(), projections.ParticipantRosterQuery{
		TeacherID: tid,
		CourseID:  q.Get("course_id"),
		List:      listutil.ParseListParams(q, projections.RosterSortColumns),
	}, projections.ParticipantRosterDeps{
		CourseStore:      stores.CourseStore,
		ParticipantStore: stores.ParticipantStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"participants": toParticipantViews(roster.Participants),
		"page":         roster.Page,
	})
}

// handleParticipantImport handles POST /api/participants/import (multipart field "file").
func handleParticipantImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		writeError(w, errs.Invalid("invalid upload: %v", err))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, errs.Invalid("file is required"))
		return
	}
	defer file.Close()

	q := r.URL.Query()
	res, err := orchestrators.ExecuteImportParticipants(r.Context(), orchestrators.ImportParticipantsInput{
		TeacherID: tid,
		CourseID:  q.Get("course_id"),
		Reader:    file,
		DryRun:    q.Get("dry_run") == "1" || q.Get("dry_run") == "true",
	}, orchestrators.ImportParticipantsDeps{
		CourseStore:      stores.CourseStore,
		ParticipantStore: stores.ParticipantStore,
		GenerateID:       generateID,
		Now:              timeNow,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	skipped := make([]map[string]any, 0, len(res.Skipped))
	for _, s := range res.Skipped {
		skipped = append(skipped, map[string]any{"row": s.Row, "error": s.Message})
	}
	status := http.StatusCreated
	if res.DryRun {
		status = http.StatusOK
	}
	writeJSON(w, status, map[string]any{
		"imported": toParticipantViews(res.Imported),
		"skipped":  skipped,
		"dry_run":  res.DryRun,
	})
}
