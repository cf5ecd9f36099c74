package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/myenergy/tracker/internal/api/metrics"
	"github.com/myenergy/tracker/internal/core/ports"
)

const (
	// BackupFilename is the download name of an exported document.
	BackupFilename = "backup_my_energy.json"
	maxImportSize  = 32 << 20
)

type BackupHandler struct {
	service ports.BackupService
}

func NewBackupHandler(service ports.BackupService) *BackupHandler {
	return &BackupHandler{service: service}
}

// Export handles GET /v1/backup/export.
//
// @Summary      Download the whole document
// @Tags         backup
// @Produce      json
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      403  {object}  map[string]string
// @Router       /v1/backup/export [get]
func (h *BackupHandler) Export(c echo.Context) error {
	data, err := h.service.Export(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+BackupFilename+`"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// Import handles POST /v1/backup/import. The document is read from the
// multipart field "file" or, failing that, from the raw request body.
//
// @Summary      Replace the whole document
// @Tags         backup
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  false  "Backup file"
// @Success      200   {object}  ports.ImportResult
// @Failure      403   {object}  map[string]string
// @Failure      413   {object}  map[string]string
// @Failure      422   {object}  map[string]string  "invalid backup file"
// @Router       /v1/backup/import [post]
func (h *BackupHandler) Import(c echo.Context) error {
	data, err := readImport(c)
	if err != nil {
		return err
	}

	res, err := h.service.Import(c.Request().Context(), data)
	if err != nil {
		metrics.ImportsTotal.WithLabelValues("rejected").Inc()
		return httpError(err)
	}

	metrics.ImportsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, res)
}

func readImport(c echo.Context) ([]byte, error) {
	var r io.Reader = c.Request().Body
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "missing file field")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxImportSize+1))
	if err != nil {
		return nil, invalidPayload()
	}
	if len(data) > maxImportSize {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "backup file too large")
	}
	return data, nil
}
