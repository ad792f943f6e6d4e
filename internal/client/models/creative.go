package models

import (
	"encoding/base64"
	"errors"
	"strings"
)

// AdTemplate names an overlay drawn on top of a creative.
type AdTemplate string

const (
	AdTemplateNone      AdTemplate = "none"
	AdTemplateMinimal   AdTemplate = "minimal"
	AdTemplateBold      AdTemplate = "bold"
	AdTemplateLifestyle AdTemplate = "lifestyle"
	AdTemplateRetail    AdTemplate = "retail"
)

// Creative is one saved ad. ImageData is a data URI; Date is an ISO-8601
// timestamp. Filter values are percentages.
type Creative struct {
	ID          string     `json:"id"`
	ProductName string     `json:"productName"`
	BrandName   string     `json:"brandName"`
	ImageData   string     `json:"imageData"`
	Date        string     `json:"date"`
	Platform    string     `json:"platform"`
	Brightness  *int       `json:"brightness,omitempty"`
	Contrast    *int       `json:"contrast,omitempty"`
	Saturation  *int       `json:"saturation,omitempty"`
	AdTemplate  AdTemplate `json:"adTemplate,omitempty"`
}

// AutosaveDraft is the dashboard form state kept between visits.
type AutosaveDraft struct {
	ProductName     string     `json:"productName,omitempty"`
	BrandName       string     `json:"brandName,omitempty"`
	CampaignGoal    string     `json:"campaignGoal,omitempty"`
	TargetPlatform  string     `json:"targetPlatform,omitempty"`
	UploadedImage   string     `json:"uploadedImage,omitempty"`
	GeneratedResult string     `json:"generatedResult,omitempty"`
	Brightness      int        `json:"brightness,omitempty"`
	Contrast        int        `json:"contrast,omitempty"`
	Saturation      int        `json:"saturation,omitempty"`
	AdTemplate      AdTemplate `json:"adTemplate,omitempty"`
}

var ErrInvalidDataURI = errors.New("invalid data uri")

// DecodeDataURI splits a base64 data URI into its media type and payload.
func DecodeDataURI(uri string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, ErrInvalidDataURI
	}
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, ErrInvalidDataURI
	}
	return mediaType, data, nil
}

// EncodeDataURI is the inverse of DecodeDataURI.
func EncodeDataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
