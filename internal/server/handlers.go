package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"voxlog/internal/api"
	"voxlog/internal/logging"
	"voxlog/internal/queue"
	"voxlog/internal/services"
)

const maxSubmitBytes = 64 << 20 // clips arrive base64-inflated

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBytes)

	var req api.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Clips) == 0 {
		writeError(w, http.StatusBadRequest, "at least one clip is required")
		return
	}
	clips, err := api.ClipsFromUploads(req.Clips)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := s.store.CreateJob(r.Context(), clips)
	if err != nil {
		if errors.Is(err, queue.ErrNoClips) {
			writeError(w, http.StatusBadRequest, "at least one clip is required")
			return
		}
		s.logger.Error("failed to create job", logging.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store job")
		return
	}

	s.logger.Info("job submitted",
		logging.String(logging.FieldJobID, job.ID),
		logging.Int("clips", len(clips)))
	if s.submitHook != nil {
		s.submitHook()
	}
	writeJSON(w, http.StatusAccepted, api.SubmitResponse{
		JobID:   job.ID,
		Status:  string(job.Status),
		Message: "job accepted",
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, queue.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		s.logger.Error("failed to load job", logging.String(logging.FieldJobID, jobID), logging.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	writeJSON(w, http.StatusOK, api.JobStatusFromJob(*job))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error("store ping failed", logging.Error(err))
		writeError(w, http.StatusInternalServerError, "queue unavailable")
		return
	}
	summary, err := s.store.Health(r.Context())
	if err != nil {
		s.logger.Error("health check failed", logging.Error(err))
		writeError(w, http.StatusInternalServerError, "queue unavailable")
		return
	}
	writeJSON(w, http.StatusOK, api.HealthFromSummary(summary))
}

func (s *Server) handleClaimNext(w http.ResponseWriter, r *http.Request) {
	claimed, err := s.store.ClaimNext(r.Context())
	if err != nil {
		s.logger.Error("claim failed", logging.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to claim job")
		return
	}
	if claimed == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.logger.Info("job claimed by worker",
		logging.String(logging.FieldJobID, claimed.ID),
		logging.Int("clips", len(claimed.Clips)))
	writeJSON(w, http.StatusOK, api.ClaimedJobFromQueue(*claimed))
}

// handleComplete publishes the worker's note and marks the job done. When
// publishing fails the job is marked error with the publish message and the
// worker gets a 502 so it does not retry.
func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	var req api.CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == "" {
		req.Title = "Untitled Note"
	}
	if s.publisher == nil {
		writeError(w, http.StatusInternalServerError, "publishing is not configured")
		return
	}

	logger := s.logger.With(logging.String(logging.FieldJobID, jobID))

	// Look the job up before touching the publisher: an unknown or already
	// finished id must not create an external page.
	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.writeTransitionError(w, logger, err)
		return
	}
	if job.IsTerminal() {
		writeError(w, http.StatusConflict, "job already finished")
		return
	}

	url, err := s.publisher.Publish(r.Context(), req.Title, req.Body)
	if err != nil {
		logger.Error("publish failed", logging.Error(err))
		if failErr := s.store.Fail(r.Context(), jobID, services.Message(err)); failErr != nil {
			logger.Error("failed to record publish failure", logging.Error(failErr))
		}
		writeError(w, http.StatusBadGateway, "failed to publish note")
		return
	}

	if err := s.store.Complete(r.Context(), jobID, url); err != nil {
		s.writeTransitionError(w, logger, err)
		return
	}
	logger.Info("job completed", logging.String("result_url", url))
	writeJSON(w, http.StatusOK, api.Ack{JobID: jobID, Status: string(queue.StatusDone)})
}

func (s *Server) handleFail(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	var req api.FailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ErrorMessage == "" {
		req.ErrorMessage = "worker reported failure"
	}

	logger := s.logger.With(logging.String(logging.FieldJobID, jobID))
	if err := s.store.Fail(r.Context(), jobID, req.ErrorMessage); err != nil {
		s.writeTransitionError(w, logger, err)
		return
	}
	logger.Info("job failed", logging.String("error_message", req.ErrorMessage))
	writeJSON(w, http.StatusOK, api.Ack{JobID: jobID, Status: string(queue.StatusError)})
}

func (s *Server) writeTransitionError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, queue.ErrNotFound):
		writeError(w, http.StatusNotFound, "job not found")
	case errors.Is(err, queue.ErrJobFinished):
		writeError(w, http.StatusConflict, "job already finished")
	default:
		logger.Error("transition failed", logging.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update job")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.ErrorResponse{Error: message})
}
