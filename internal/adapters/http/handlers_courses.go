package web

import (
	"net/http"

	"lessonbook/internal/application/orchestrators"
	"lessonbook/internal/application/projections"
)

type createCourseRequest struct {
	Title     string `json:"title" validate:"required,notblank,max=100"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// handleCourses handles GET/POST for /api/courses
func handleCourses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		courses, err := projections.QueryListCourses(ctx, projections.ListCoursesQuery{TeacherID: tid}, projections.ListCoursesDeps{
			CourseStore: stores.CourseStore,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCourseViews(courses))

	case http.MethodPost:
		var req createCourseRequest
		if err := bind(r, &req); err != nil {
			writeError(w, err)
			return
		}
		c, err := orchestrators.ExecuteCreateCourse(ctx, orchestrators.CreateCourseInput{
			TeacherID: tid,
			Title:     req.Title,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		}, orchestrators.CreateCourseDeps{
			CourseStore: stores.CourseStore,
			GenerateID:  generateID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCourseView(c))

	default:
		methodNotAllowed(w)
	}
}

func handleCourseDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}
	d, err := projections.QueryGetCourse(r.Context(), projections.GetCourseQuery{
		TeacherID: tid,
		CourseID:  r.URL.Query().Get("id"),
	}, projections.GetCourseDeps{
		CourseStore:      stores.CourseStore,
		LessonStore:      stores.LessonStore,
		ParticipantStore: stores.ParticipantStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"course":       toCourseView(d.Course),
		"participants": toParticipantViews(d.Participants),
		"lessons":      toLessonViews(d.Lessons),
	})
}
