package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/2beens/fitlog/internal/auth"
	"github.com/2beens/fitlog/internal/filestore"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=profiles_test

// MaxAvatarSize caps the multipart body of an avatar upload.
const MaxAvatarSize = 5 << 20

type profilesRepo interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	UpdateName(ctx context.Context, userID, name string) error
	UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error
}

type avatarStore interface {
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	Open(ctx context.Context, name string) (*os.File, error)
	Delete(ctx context.Context, name string) error
}

type UpdateNameRequest struct {
	Name string `json:"name"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatarUrl"`
}

type Handler struct {
	repo    profilesRepo
	avatars avatarStore
	now     func() time.Time
}

func NewHandler(repo profilesRepo, avatars avatarStore) *Handler {
	return &Handler{
		repo:    repo,
		avatars: avatars,
		now:     time.Now,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/profile", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profile/name", handler.HandleUpdateName).Methods("PUT", "OPTIONS").Name("update-profile-name")
	r.HandleFunc("/profile/avatar", handler.HandleUploadAvatar).Methods("POST", "OPTIONS").Name("upload-avatar")
	r.HandleFunc("/avatars/{id}", handler.HandleGetAvatar).Methods("GET").Name("get-avatar")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := handler.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			pkg.WriteJSONError(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("get profile %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, profile, http.StatusOK)
}

func (handler *Handler) HandleUpdateName(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.update-name")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	name, err := normalizeName(req.Name)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.UpdateName(ctx, userID, name); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			pkg.WriteJSONError(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("update profile name %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to update profile", http.StatusInternalServerError)
		return
	}

	profile, err := handler.repo.Get(ctx, userID)
	if err != nil {
		log.Errorf("get profile %s after name update: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, profile, http.StatusOK)
}

func (handler *Handler) HandleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.upload-avatar")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxAvatarSize)
	file, header, err := r.FormFile("avatar")
	if err != nil {
		log.Tracef("upload avatar, get file from form: %s", err)
		pkg.WriteJSONError(w, "avatar file missing or too large", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Errorf("upload avatar, close file: %s", err)
		}
	}()

	log.Debugf(
		"upload avatar, filename: %s, size: %d, content-type: %s",
		header.Filename, header.Size, header.Header.Get("Content-Type"),
	)

	fileName, err := AvatarFileName(userID, header.Filename, handler.now())
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	previous, err := handler.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			pkg.WriteJSONError(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("upload avatar, get profile %s: %s", userID, err)
		pkg.WriteJSONError(w, "upload avatar failed", http.StatusInternalServerError)
		return
	}

	size, err := handler.avatars.Save(ctx, fileName, file)
	if err != nil {
		log.Errorf("upload avatar, save file %s: %s", fileName, err)
		pkg.WriteJSONError(w, "upload avatar failed", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int64("avatar.size", size))

	avatarURL := AvatarsURLPrefix + fileName
	if err := handler.repo.UpdateAvatarURL(ctx, userID, avatarURL); err != nil {
		log.Errorf("upload avatar, update profile %s: %s", userID, err)
		if delErr := handler.avatars.Delete(ctx, fileName); delErr != nil {
			log.Errorf("upload avatar, remove orphaned file %s: %s", fileName, delErr)
		}
		pkg.WriteJSONError(w, "upload avatar failed", http.StatusInternalServerError)
		return
	}

	if oldFile, ok := avatarFileFromURL(previous.AvatarURL); ok {
		if err := handler.avatars.Delete(ctx, oldFile); err != nil && !errors.Is(err, filestore.ErrFileNotFound) {
			log.Warnf("upload avatar, remove previous avatar %s: %s", oldFile, err)
		}
	}

	pkg.WriteJSON(w, AvatarResponse{AvatarURL: avatarURL}, http.StatusCreated)
}

func (handler *Handler) HandleGetAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.get-avatar")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	f, err := handler.avatars.Open(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, filestore.ErrFileNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, filestore.ErrInvalidFileName):
			http.Error(w, "invalid avatar id", http.StatusBadRequest)
		default:
			log.Errorf("get avatar %s: %s", id, err)
			http.Error(w, "failed to get avatar", http.StatusInternalServerError)
		}
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("get avatar, close file: %s", err)
		}
	}()

	stat, err := f.Stat()
	if err != nil {
		log.Errorf("get avatar %s, stat: %s", id, err)
		http.Error(w, "failed to get avatar", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(w, r, id, stat.ModTime(), f)
}
