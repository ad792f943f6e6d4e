package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/retailmedia/internal/client/imagegen"
	"github.com/dmitrijs2005/retailmedia/internal/client/models"
)

// seedsFn is a test seam for the random generation seeds.
var seedsFn = imagegen.RandomSeeds

// Generate prints image URLs for a prompt and can keep one in the draft.
func (a *App) Generate(ctx context.Context, args []string) error {
	style := imagegen.StyleStandard
	if len(args) > 0 {
		style = imagegen.Style(args[0])
		if !style.Valid() {
			return fmt.Errorf("unknown style %q", args[0])
		}
	}

	prompt, err := getSimpleText(a.reader, "Describe the image", os.Stdout)
	if err != nil {
		return err
	}
	if prompt == "" {
		return fmt.Errorf("prompt is required")
	}

	urls := imagegen.BuildURLs(prompt, style, seedsFn(imagegen.DefaultVariations))
	for i, u := range urls {
		printlnFn(fmt.Sprintf("%d) %s", i+1, u))
	}

	pick, err := getSimpleText(a.reader, "Keep one in your draft? Enter its number or leave empty", os.Stdout)
	if err != nil || pick == "" {
		return nil
	}
	n, err := strconv.Atoi(pick)
	if err != nil || n < 1 || n > len(urls) {
		return fmt.Errorf("pick a number between 1 and %d", len(urls))
	}

	var draft models.AutosaveDraft
	if _, err := a.store.GetAutosave(ctx, a.email(), &draft); err != nil {
		return err
	}
	draft.GeneratedResult = urls[n-1]
	if err := a.store.SaveAutosave(ctx, a.email(), draft); err != nil {
		return err
	}
	printlnFn("Draft updated")
	return nil
}

// Draft shows the autosaved dashboard form. "draft save" edits it with
// name=value lines.
func (a *App) Draft(ctx context.Context, args []string) error {
	var draft models.AutosaveDraft
	found, err := a.store.GetAutosave(ctx, a.email(), &draft)
	if err != nil {
		return err
	}

	if len(args) > 0 && args[0] == "save" {
		fields, err := GetFields(a.reader, "Edit draft (product, brand, goal, platform, template)", os.Stdout)
		if err != nil {
			return err
		}
		applyDraftFields(&draft, fields)
		if err := a.store.SaveAutosave(ctx, a.email(), draft); err != nil {
			return err
		}
		printlnFn("Draft saved")
		return nil
	}

	if !found {
		printlnFn("No draft saved")
		return nil
	}
	printlnFn(fmt.Sprintf("Product:  %s\nBrand:    %s\nGoal:     %s\nPlatform: %s\nTemplate: %s\nResult:   %s",
		draft.ProductName, draft.BrandName, draft.CampaignGoal, draft.TargetPlatform, draft.AdTemplate, draft.GeneratedResult))
	return nil
}

func applyDraftFields(d *models.AutosaveDraft, fields map[string]string) {
	for name, value := range fields {
		switch name {
		case "product":
			d.ProductName = value
		case "brand":
			d.BrandName = value
		case "goal":
			d.CampaignGoal = value
		case "platform":
			d.TargetPlatform = value
		case "template":
			d.AdTemplate = models.AdTemplate(value)
		}
	}
}
