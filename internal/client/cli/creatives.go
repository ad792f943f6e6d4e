package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/filex"
	"github.com/dmitrijs2005/retailmedia/internal/netx"
	"github.com/google/uuid"
)

// isoMillis matches JavaScript's Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// downloadFn and readFileFn are test seams for fetching creative images.
var (
	downloadFn = func(ctx context.Context, url string) ([]byte, string, error) {
		return netx.Download(ctx, http.DefaultClient, url)
	}
	readFileFn = os.ReadFile
	nowFn      = time.Now
)

var errUsageID = errors.New("usage: <command> <id>")

// AddCreative saves a new creative from a local image file or an image URL.
func (a *App) AddCreative(ctx context.Context) error {
	var c models.Creative
	var err error

	prompts := []struct {
		dst    *string
		prompt string
	}{
		{&c.ProductName, "Enter product name"},
		{&c.BrandName, "Enter brand name"},
		{&c.Platform, "Enter target platform (e.g. Instagram)"},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.prompt, os.Stdout); err != nil {
			return err
		}
	}

	source, err := getSimpleText(a.reader, "Enter image file path or URL", os.Stdout)
	if err != nil {
		return err
	}
	if c.ImageData, err = loadImage(ctx, source); err != nil {
		return err
	}

	template, err := getSimpleText(a.reader, "Ad template (none, minimal, bold, lifestyle, retail)", os.Stdout)
	if err != nil {
		return err
	}
	if template != "" {
		c.AdTemplate = models.AdTemplate(template)
	}

	c.ID = uuid.NewString()
	c.Date = nowFn().UTC().Format(isoMillis)

	if err := a.store.SaveCreative(ctx, a.email(), c); err != nil {
		return err
	}
	printlnFn("Saved creative", c.ID)
	return nil
}

// loadImage returns source as a data URI. Data URIs pass through.
func loadImage(ctx context.Context, source string) (string, error) {
	switch {
	case source == "":
		return "", errors.New("image is required")
	case strings.HasPrefix(source, "data:"):
		if _, _, err := models.DecodeDataURI(source); err != nil {
			return "", err
		}
		return source, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		data, contentType, err := downloadFn(ctx, source)
		if err != nil {
			return "", fmt.Errorf("download image: %w", err)
		}
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		mediaType, _, _ := strings.Cut(contentType, ";")
		return models.EncodeDataURI(strings.TrimSpace(mediaType), data), nil
	default:
		data, err := readFileFn(source)
		if err != nil {
			return "", fmt.Errorf("read image: %w", err)
		}
		mediaType, _, _ := strings.Cut(http.DetectContentType(data), ";")
		return models.EncodeDataURI(mediaType, data), nil
	}
}

func (a *App) List(ctx context.Context) error {
	list, err := a.store.GetCreatives(ctx, a.email())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No creatives yet. Use 'add' or 'generate'.")
		return nil
	}
	for _, c := range list {
		printlnFn(fmt.Sprintf("%s | %s | %s by %s | %s", c.ID, c.Date, c.ProductName, c.BrandName, c.Platform))
	}
	return nil
}

func (a *App) creative(ctx context.Context, args []string) (*models.Creative, error) {
	if len(args) == 0 {
		return nil, errUsageID
	}
	c, err := a.store.GetCreativeByID(ctx, a.email(), args[0])
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("creative %s not found", args[0])
	}
	return c, nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	c, err := a.creative(ctx, args)
	if err != nil {
		return err
	}

	mediaType, data, err := models.DecodeDataURI(c.ImageData)
	image := "unreadable"
	if err == nil {
		image = fmt.Sprintf("%s, %d bytes", mediaType, len(data))
	}

	lines := []string{
		"ID:       " + c.ID,
		"Product:  " + c.ProductName,
		"Brand:    " + c.BrandName,
		"Platform: " + c.Platform,
		"Date:     " + c.Date,
		"Image:    " + image,
	}
	if c.AdTemplate != "" {
		lines = append(lines, "Template: "+string(c.AdTemplate))
	}
	for _, f := range []struct {
		name string
		v    *int
	}{{"Brightness", c.Brightness}, {"Contrast", c.Contrast}, {"Saturation", c.Saturation}} {
		if f.v != nil {
			lines = append(lines, fmt.Sprintf("%s: %d%%", f.name, *f.v))
		}
	}
	printlnFn(strings.Join(lines, "\n"))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsageID
	}
	rest, err := a.store.DeleteCreative(ctx, a.email(), args[0])
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Deleted. %d creative(s) left.", len(rest)))
	return nil
}

// Export writes the creative image into the export directory and, when the
// server is reachable, uploads it and prints a download link.
func (a *App) Export(ctx context.Context, args []string) error {
	c, err := a.creative(ctx, args)
	if err != nil {
		return err
	}
	mediaType, data, err := models.DecodeDataURI(c.ImageData)
	if err != nil {
		return err
	}

	dir, err := filex.EnsureSubDir(a.config.ExportDir)
	if err != nil {
		return err
	}
	path, err := filex.WriteFile(dir, c.ID+filex.ExtensionFor(mediaType), data)
	if err != nil {
		return err
	}
	printlnFn("Saved to", path)

	if a.mode() != ModeOnline || a.api == nil {
		return nil
	}
	resp, err := a.api.ExportCreative(ctx, a.session.Token, a.email(), *c)
	if err != nil {
		a.logger.Warn(ctx, "creative upload failed", "id", c.ID, "error", err)
		return fmt.Errorf("upload: %w", err)
	}
	printlnFn("Download link:", resp.URL)
	return nil
}
