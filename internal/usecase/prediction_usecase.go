package usecase

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"path/filepath"

	"dermassist/internal/apiclient"
	"dermassist/internal/domain/entity"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

// sniffLen is how much of an upload is inspected to detect its type.
const sniffLen = 3072

var ErrUnsupportedImage = &apiclient.Error{
	Kind:    apiclient.KindValidation,
	Message: "Please choose a JPEG, PNG, WebP or HEIC image.",
	Fields:  map[string]string{"Image": "Image must be a JPEG, PNG, WebP or HEIC file"},
}

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/heic", "image/heif"}

type PredictionUsecase interface {
	UploadImage(ctx context.Context, filename string, image io.Reader) (*entity.Prediction, error)
	ListPredictions(ctx context.Context) ([]entity.Prediction, error)
	GetPrediction(ctx context.Context, id string) (*entity.Prediction, error)
	DeletePrediction(ctx context.Context, id string) error
}

type predictionUsecase struct {
	log *logrus.Logger
	api API
}

func NewPredictionUsecase(log *logrus.Logger, api API) PredictionUsecase {
	return &predictionUsecase{log: log, api: api}
}

// UploadImage submits the image for inference as the multipart field "image".
func (u *predictionUsecase) UploadImage(ctx context.Context, filename string, image io.Reader) (*entity.Prediction, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(image, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, apiclient.NewError(apiclient.KindUnknown, "Could not read the selected image.")
	}
	head = head[:n]
	if n == 0 {
		return nil, ErrUnsupportedImage
	}

	mtype := mimetype.Detect(head)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		u.log.Warnf("Rejected upload %s with type %s", filename, mtype.String())
		return nil, ErrUnsupportedImage
	}

	if filename == "" {
		filename = "image" + mtype.Extension()
	}
	body := io.MultiReader(bytes.NewReader(head), image)

	var prediction entity.Prediction
	if err := u.api.Upload(ctx, "/predict", "image", filepath.Base(filename), mtype.String(), body, &prediction); err != nil {
		u.log.Warnf("Failed to upload image %s: %+v", filename, err)
		return nil, err
	}

	u.log.Infof("Prediction %s: %s (%.2f)", prediction.ID, prediction.Result.PredictedLabel, prediction.Result.ConfidenceScore)
	return &prediction, nil
}

// ListPredictions returns the user's predictions, most recent first.
func (u *predictionUsecase) ListPredictions(ctx context.Context) ([]entity.Prediction, error) {
	var predictions []entity.Prediction
	if _, err := u.api.Get(ctx, "/predictions", nil, &predictions); err != nil {
		u.log.Warnf("Failed to list predictions: %+v", err)
		return nil, err
	}
	entity.SortPredictionsNewestFirst(predictions)
	return predictions, nil
}

func (u *predictionUsecase) GetPrediction(ctx context.Context, id string) (*entity.Prediction, error) {
	var prediction entity.Prediction
	if _, err := u.api.Get(ctx, "/predictions/"+url.PathEscape(id), nil, &prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}

func (u *predictionUsecase) DeletePrediction(ctx context.Context, id string) error {
	if err := u.api.Delete(ctx, "/predictions/"+url.PathEscape(id)); err != nil {
		u.log.Warnf("Failed to delete prediction %s: %+v", id, err)
		return err
	}
	u.log.Infof("Prediction deleted: id=%s", id)
	return nil
}
