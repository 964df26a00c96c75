package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const materialsFolder = "study_platform_materials"

var ErrUploadsDisabled = errors.New("file uploads are not configured")

type UploadSignature struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"api_key"`
	CloudName string `json:"cloud_name"`
	Folder    string `json:"folder"`
}

// Uploader stores material images on Cloudinary. A zero Uploader (no
// CLOUDINARY_URL) rejects every call with ErrUploadsDisabled.
type Uploader struct {
	cld    *cloudinary.Cloudinary
	secret string
}

func NewUploader(cloudinaryURL string) (*Uploader, error) {
	if cloudinaryURL == "" {
		return &Uploader{}, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("initialize cloudinary: %w", err)
	}
	parsedURL, err := url.Parse(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("parse cloudinary url: %w", err)
	}
	secret, _ := parsedURL.User.Password()
	return &Uploader{cld: cld, secret: secret}, nil
}

func (u *Uploader) Enabled() bool { return u.cld != nil }

// Upload sends file to the materials folder and returns its secure URL.
func (u *Uploader) Upload(ctx context.Context, file *multipart.FileHeader, publicID string) (string, error) {
	if !u.Enabled() {
		return "", ErrUploadsDisabled
	}
	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := u.cld.Upload.Upload(ctx, f, uploader.UploadParams{
		Folder:   materialsFolder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("upload to cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("upload to cloudinary: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

// Signature signs the parameters a browser needs for a direct upload.
func (u *Uploader) Signature() (*UploadSignature, error) {
	if !u.Enabled() {
		return nil, ErrUploadsDisabled
	}
	paramsToSign, err := api.StructToParams(uploader.UploadParams{Folder: materialsFolder})
	if err != nil {
		return nil, fmt.Errorf("prepare signature params: %w", err)
	}
	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, u.secret)
	if err != nil {
		return nil, fmt.Errorf("sign upload params: %w", err)
	}
	return &UploadSignature{
		Signature: signature,
		Timestamp: timestamp,
		APIKey:    u.cld.Config.Cloud.APIKey,
		CloudName: u.cld.Config.Cloud.CloudName,
		Folder:    materialsFolder,
	}, nil
}
