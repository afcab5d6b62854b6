package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/david578-arc/invoice-analytics/models"
)

const documentSelectQuery = `SELECT id, name, file_path, file_size, file_type, user_id, created_at FROM documents`

func scanDocument(scanner interface{ Scan(...any) error }) (models.Document, error) {
	var d models.Document
	err := scanner.Scan(&d.ID, &d.Name, &d.FilePath, &d.FileSize, &d.FileType, &d.UserID, &d.CreatedAt)
	return d, err
}

// ListDocuments lists the most recent documents
// @Summary      List documents
// @Description  The 50 most recently uploaded documents.
// @Tags         documents
// @Produce      json
// @Success      200  {array}  models.Document
// @Router       /documents [get]
// @Security     BearerAuth
func ListDocuments(w http.ResponseWriter, r *http.Request) {
	rows, err := DB.Query(documentSelectQuery + " ORDER BY created_at DESC LIMIT 50")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	documents := []models.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		documents = append(documents, d)
	}
	writeJSON(w, http.StatusOK, documents)
}

// CreateDocument registers an uploaded document
// @Summary      Create document
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        document  body      models.DocumentInput  true  "Document metadata"
// @Success      201       {object}  models.Document
// @Failure      400       {object}  errorResponse
// @Router       /documents [post]
// @Security     BearerAuth
func CreateDocument(w http.ResponseWriter, r *http.Request) {
	var input models.DocumentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO documents (name, file_path, file_size, file_type, user_id)
		VALUES (?, ?, ?, ?, ?) RETURNING id`,
		input.Name, input.FilePath, input.FileSize, input.FileType, input.UserID).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	d, err := scanDocument(DB.QueryRow(documentSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// DeleteDocument deletes a document
// @Summary      Delete document
// @Tags         documents
// @Produce      json
// @Param        id   path      int  true  "Document ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /documents/{id} [delete]
// @Security     BearerAuth
func DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
