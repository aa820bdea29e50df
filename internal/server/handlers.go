package server

import (
	"errors"
	"fmt"
	"hash/fnv"
	"image/color"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lumenpage/materials-cli/internal/utils"
)

// Scope tokens accepted in the project_id query parameter.
const (
	scopeTokenAll  = "all"
	scopeTokenNone = "none"
)

// listMaterials serves both the global and the project-scoped list route.
// The project_id query token drives the filter; on the scoped route it
// defaults to the path project.
func (s *Server) listMaterials(c *gin.Context) {
	token := c.Query("project_id")
	if token == "" {
		token = c.Param("projectID")
	}
	if token == "" {
		token = scopeTokenAll
	}

	query := s.db.Model(&Material{}).Order("created_at DESC")
	switch token {
	case scopeTokenAll:
	case scopeTokenNone:
		query = query.Where("project_id IS NULL")
	default:
		// A concrete token must name an existing project.
		projectID, ok := s.resolveProjectToken(c, token)
		if !ok {
			return
		}
		query = query.Where("project_id = ?", *projectID)
	}

	var materials []Material
	if err := query.Find(&materials).Error; err != nil {
		logrus.Errorf("server: list materials failed: %v", err)
		respondError(c, http.StatusInternalServerError, codeDatabaseError, "failed to query materials")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"materials": newMaterialViews(materials),
		"count":     len(materials),
	})
}

// uploadMaterial serves both the global and the project-scoped upload
// route. The project_id query token resolves the association; "none"
// uploads without one.
func (s *Server) uploadMaterial(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, codeMissingFile, "multipart field 'file' is required")
		return
	}

	if !utils.IsAllowedMaterialType(fileHeader.Filename) {
		respondError(c, http.StatusBadRequest, codeInvalidFileType,
			fmt.Sprintf("file type not allowed (allowed: %s)", strings.Join(utils.AllowedMaterialExtensions(), ", ")))
		return
	}

	token := c.Query("project_id")
	if token == "" {
		token = c.Param("projectID")
	}

	projectID, ok := s.resolveProjectToken(c, token)
	if !ok {
		return
	}

	storedName := storedFilename(fileHeader.Filename)
	relativePath := filepath.Join("materials", storedName)
	destination := filepath.Join(s.dataDir, relativePath)

	if err := c.SaveUploadedFile(fileHeader, destination); err != nil {
		logrus.Errorf("server: saving upload failed: %v", err)
		respondError(c, http.StatusInternalServerError, codeStorageError, "failed to store file")
		return
	}

	material := Material{
		ProjectID:    projectID,
		Filename:     storedName,
		RelativePath: relativePath,
	}
	if err := s.db.Create(&material).Error; err != nil {
		logrus.Errorf("server: creating material record failed: %v", err)
		respondError(c, http.StatusInternalServerError, codeDatabaseError, "failed to create material")
		return
	}

	respondData(c, http.StatusCreated, newMaterialView(&material))
}

// generateMaterial creates a generated image for the path project. The dev
// service has no image model behind it; it renders a deterministic
// placeholder so the full flow is exercisable offline.
func (s *Server) generateMaterial(c *gin.Context) {
	projectID := c.Param("projectID")
	if _, ok := s.resolveProjectToken(c, projectID); !ok {
		return
	}

	prompt := strings.TrimSpace(c.PostForm("prompt"))
	if prompt == "" {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "prompt is required")
		return
	}

	storedName := fmt.Sprintf("generated_%d.png", time.Now().UnixMilli())
	relativePath := filepath.Join("materials", storedName)
	destination := filepath.Join(s.dataDir, relativePath)

	if err := renderPlaceholder(destination, prompt); err != nil {
		logrus.Errorf("server: rendering placeholder failed: %v", err)
		respondError(c, http.StatusInternalServerError, codeStorageError, "failed to generate image")
		return
	}

	material := Material{
		ProjectID:    &projectID,
		Filename:     storedName,
		RelativePath: relativePath,
	}
	if err := s.db.Create(&material).Error; err != nil {
		logrus.Errorf("server: creating material record failed: %v", err)
		respondError(c, http.StatusInternalServerError, codeDatabaseError, "failed to create material")
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"image_url":     material.URL(),
		"relative_path": filepath.ToSlash(relativePath),
		"material_id":   material.ID,
	})
}

// listProjects serves the project catalog, newest first.
func (s *Server) listProjects(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	var projects []Project
	if err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&projects).Error; err != nil {
		logrus.Errorf("server: list projects failed: %v", err)
		respondError(c, http.StatusInternalServerError, codeDatabaseError, "failed to query projects")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"projects": newProjectViews(projects),
	})
}

// createProject creates a project, mainly for seeding dev data.
func (s *Server) createProject(c *gin.Context) {
	var body struct {
		Title   string `json:"title"`
		Prompt  string `json:"prompt"`
		Outline string `json:"outline"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}

	project := Project{
		Title:   body.Title,
		Prompt:  body.Prompt,
		Outline: body.Outline,
	}
	if err := s.db.Create(&project).Error; err != nil {
		logrus.Errorf("server: creating project failed: %v", err)
		respondError(c, http.StatusInternalServerError, codeDatabaseError, "failed to create project")
		return
	}

	respondData(c, http.StatusCreated, newProjectView(&project))
}

// resolveProjectToken maps a project_id token to a nullable association.
// A concrete id must exist; otherwise a 404 is written and ok is false.
func (s *Server) resolveProjectToken(c *gin.Context, token string) (*string, bool) {
	switch token {
	case "", scopeTokenAll, scopeTokenNone:
		return nil, true
	}

	var project Project
	if err := s.db.First(&project, "id = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, codeProjectNotFound, fmt.Sprintf("project %s not found", token))
		} else {
			logrus.Errorf("server: project lookup failed: %v", err)
			respondError(c, http.StatusInternalServerError, codeDatabaseError, "failed to query project")
		}
		return nil, false
	}
	return &project.ID, true
}

// storedFilename derives the stored name from the original one, keeping
// the stem and appending a millisecond timestamp before the extension.
func storedFilename(original string) string {
	base := filepath.Base(original)
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%d%s", stem, time.Now().UnixMilli(), ext)
}

// renderPlaceholder writes a solid-color PNG whose color is derived from
// the prompt, so repeated prompts stay visually distinguishable.
func renderPlaceholder(destination, prompt string) error {
	h := fnv.New32a()
	h.Write([]byte(prompt))
	sum := h.Sum32()

	fill := color.NRGBA{
		R: uint8(sum >> 16),
		G: uint8(sum >> 8),
		B: uint8(sum),
		A: 255,
	}
	img := imaging.New(512, 512, fill)

	if err := os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
		return err
	}
	return imaging.Save(img, destination)
}
