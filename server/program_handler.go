package server

import (
	"errors"
	"net/http"
	"strconv"

	"anganwadi/core/program"
	"anganwadi/logger"

	"github.com/gorilla/mux"
)

const maxUploadMemory = 32 << 20 // 32MB held in memory before spilling to disk

// programInputFromForm reads the four text fields and the optional image
// file out of a multipart request.
func programInputFromForm(r *http.Request) (program.ProgramInput, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return program.ProgramInput{}, err
	}

	input := program.ProgramInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		input.Image = &program.ImageUpload{
			Reader:      file,
			Size:        header.Size,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		}
	case errors.Is(err, http.ErrMissingFile):
		// No image supplied; the image field stays empty.
	default:
		return program.ProgramInput{}, err
	}

	return input, nil
}

// AddProgramHandler handles POST /add-program.
// Expected multipart form fields: title, description, date, time and an
// optional single file field named "image".
func (h *APIHandler) AddProgramHandler(w http.ResponseWriter, r *http.Request) {
	input, err := programInputFromForm(r)
	if err != nil {
		logger.Warn("Failed to parse add-program form", logger.ErrorField(err))
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	if input.Image != nil {
		defer r.MultipartForm.RemoveAll()
	}

	if err := h.programService.AddProgram(r.Context(), input); err != nil {
		logger.Error("Add program failed", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	logger.Info("Program added", logger.String("title", input.Title))
	respondMessage(w, http.StatusCreated, "Program Added Successfully")
}

// UpdateProgramHandler handles PUT /update-program/{id}. The four text
// fields overwrite the stored values unconditionally; the image is
// replaced only when a new file is supplied.
func (h *APIHandler) UpdateProgramHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Program not found")
		return
	}

	input, err := programInputFromForm(r)
	if err != nil {
		logger.Warn("Failed to parse update-program form",
			logger.Int64("programId", id),
			logger.ErrorField(err))
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	if input.Image != nil {
		defer r.MultipartForm.RemoveAll()
	}

	if err := h.programService.UpdateProgram(r.Context(), id, input); err != nil {
		if errors.Is(err, program.ErrProgramNotFound) {
			respondError(w, http.StatusNotFound, "Program not found")
			return
		}
		logger.Error("Update program failed",
			logger.Int64("programId", id),
			logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Update failed")
		return
	}

	logger.Info("Program updated", logger.Int64("programId", id))
	respondMessage(w, http.StatusOK, "Program Updated Successfully")
}

// DeleteProgramHandler handles DELETE /delete-program/{id}.
func (h *APIHandler) DeleteProgramHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Program not found")
		return
	}

	if err := h.programService.DeleteProgram(r.Context(), id); err != nil {
		if errors.Is(err, program.ErrProgramNotFound) {
			respondError(w, http.StatusNotFound, "Program not found")
			return
		}
		logger.Error("Delete program failed",
			logger.Int64("programId", id),
			logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Delete failed")
		return
	}

	logger.Info("Program deleted", logger.Int64("programId", id))
	respondMessage(w, http.StatusOK, "Program Deleted Successfully")
}

// GetProgramsHandler handles GET /programs, the public listing.
func (h *APIHandler) GetProgramsHandler(w http.ResponseWriter, r *http.Request) {
	programs, err := h.programService.ListPrograms(r.Context())
	if err != nil {
		logger.Error("List programs failed", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch programs")
		return
	}

	respondJSON(w, http.StatusOK, programs)
}
