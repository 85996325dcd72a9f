package web

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"pharma_qms/internal/qms"
	"pharma_qms/internal/records"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes caps the multipart form, attachment included.
const maxUploadBytes = 16 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".docx": true,
}

type formState struct {
	Def     records.Definition
	Values  map[string]string
	Receipt *qms.Receipt
	Error   string
}

type indexData struct {
	Forms []formState
}

type adminData struct {
	Authenticated bool
	Error         string
	Tables        []qms.TableDump
}

func blankIndex() indexData {
	forms := make([]formState, len(records.All))
	for i, def := range records.All {
		forms[i] = formState{Def: def, Values: map[string]string{}}
	}
	return indexData{Forms: forms}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index.html", blankIndex())
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	def, ok := records.BySlug(chi.URLParam(r, "type"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Debug().Err(err).Msg("Failed to parse multipart form")
		s.renderSubmitResult(w, def, nil, http.StatusBadRequest, nil, "Could not read the submitted form.")
		return
	}

	fields := make(map[string]string, len(def.Fields))
	for _, f := range def.Fields {
		fields[f.Name] = strings.TrimSpace(r.FormValue(f.Name))
	}

	att, badExt := attachmentFromRequest(r)
	if badExt != "" {
		s.renderSubmitResult(w, def, fields, http.StatusBadRequest, nil,
			fmt.Sprintf("Attachment type %s is not accepted (pdf, png, jpg, jpeg, docx only).", badExt))
		return
	}
	if att != nil {
		defer att.file.Close()
	}

	var submitted *qms.Attachment
	if att != nil {
		submitted = &att.Attachment
	}

	receipt, err := s.svc.Submit(r.Context(), def, fields, submitted)
	if err != nil {
		status, message := submitErrorMessage(err)
		log.Warn().Err(err).Str("table", def.Name).Msg("Submission failed")
		s.renderSubmitResult(w, def, fields, status, nil, message)
		return
	}

	s.renderSubmitResult(w, def, nil, http.StatusOK, &receipt, "")
}

// renderSubmitResult re-renders the index with the outcome attached to the
// submitted form. Failed submissions keep their entered values.
func (s *Server) renderSubmitResult(w http.ResponseWriter, def records.Definition, values map[string]string, status int, receipt *qms.Receipt, errMessage string) {
	data := blankIndex()
	for i := range data.Forms {
		if data.Forms[i].Def.Slug != def.Slug {
			continue
		}
		data.Forms[i].Receipt = receipt
		data.Forms[i].Error = errMessage
		if values != nil {
			data.Forms[i].Values = values
		}
	}
	s.render(w, status, "index.html", data)
}

type requestAttachment struct {
	qms.Attachment
	file multipart.File
}

// attachmentFromRequest pulls the optional attachment out of the multipart
// form. A non-empty second return names a rejected file extension.
func attachmentFromRequest(r *http.Request) (*requestAttachment, string) {
	file, header, err := r.FormFile("attachment")
	if err != nil {
		// Absent attachment control or no file chosen.
		return nil, ""
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		file.Close()
		if ext == "" {
			ext = "(none)"
		}
		return nil, ext
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &requestAttachment{
		Attachment: qms.Attachment{
			Filename: header.Filename,
			MimeType: mimeType,
			Content:  file,
		},
		file: file,
	}, ""
}

// submitErrorMessage maps a Submit failure to an HTTP status and a user
// message, keeping validation problems distinct from infrastructure ones.
func submitErrorMessage(err error) (int, string) {
	var verr *records.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, "Please fill in all required fields: " + strings.Join(verr.Missing, ", ")
	}

	var uerr *qms.UploadError
	if errors.As(err, &uerr) {
		return http.StatusBadGateway, "The attachment could not be uploaded. The record was not saved; please try again."
	}

	var serr *qms.StoreError
	if errors.As(err, &serr) {
		if serr.Op == "append" {
			return http.StatusBadGateway, "The record could not be written to the register. Please try again."
		}
		return http.StatusBadGateway, "The record register is currently unavailable. Please try again."
	}

	var merr *records.MalformedIDError
	if errors.As(err, &merr) {
		return http.StatusInternalServerError, "The register contains an unreadable record ID; contact an administrator."
	}

	return http.StatusInternalServerError, "An unexpected error occurred. Please try again."
}

func (s *Server) handleAdminPrompt(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "admin.html", adminData{})
}

func (s *Server) handleAdminView(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "admin.html", adminData{Error: "Could not read the form."})
		return
	}

	if !s.svc.Authenticate(r.FormValue("password")) {
		log.Warn().Msg("Admin access denied")
		s.render(w, http.StatusUnauthorized, "admin.html", adminData{Error: qms.ErrAuthDenied.Error()})
		return
	}

	tables, err := s.svc.ListAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tables for admin view")
		s.render(w, http.StatusBadGateway, "admin.html", adminData{
			Authenticated: true,
			Error:         "One or more registers could not be read. Please try again.",
		})
		return
	}

	s.render(w, http.StatusOK, "admin.html", adminData{
		Authenticated: true,
		Tables:        tables,
	})
}
