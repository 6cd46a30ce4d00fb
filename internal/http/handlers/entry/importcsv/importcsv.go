// Package importcsv реализует HTTP-обработчик массового импорта записей
// журнала из CSV-файла. Итог импорта отдается в фиксированном формате
// исходной системы: количество обработанных строк, количество строк с
// ошибками и список ошибок по строкам.
package importcsv

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-ledger/internal/http/response"
	"github.com/magabrotheeeer/finance-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

// maxUploadSize ограничивает размер загружаемого файла.
const maxUploadSize = 10 << 20 // 10 MiB

// Service описывает интерфейс бизнес-логики импорта CSV.
type Service interface {
	ImportCSV(ctx context.Context, filename string, data []byte, userID int64) (*models.ImportResult, error)
}

// Handler обрабатывает HTTP-запросы на импорт CSV.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Импорт записей из CSV
// @Description Принимает CSV-файл (multipart-поле "file") и создает записи
// @Description для текущего пользователя. Строки с ошибками пропускаются,
// @Description ошибки возвращаются в теле ответа.
// @Tags Entries
// @Security BearerAuth
// @Accept  mpfd
// @Produce  json
// @Param file formData file true "CSV-файл с записями"
// @Success 200 {object} models.ImportResult "Итог импорта"
// @Failure 400 {object} response.ErrorResponse "Некорректный файл"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /entries/import [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.importcsv"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Error("missing file field", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("a file field is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		log.Error("failed to read file", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not read the file"))
		return
	}

	result, err := h.service.ImportCSV(r.Context(), header.Filename, data, user.ID)
	if err != nil {
		log.Error("import failed", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("csv imported",
		slog.String("filename", header.Filename),
		slog.Int("processed", result.TotalProcessed),
		slog.Int("errors", result.TotalErrors))
	// Формат итога импорта зафиксирован внешним контрактом,
	// поэтому он отдается без обёртки Response.
	render.JSON(w, r, result)
}
