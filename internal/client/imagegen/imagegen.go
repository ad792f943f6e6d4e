// Package imagegen builds request URLs for the Pollinations text-to-image
// endpoint. Each URL is one image; different seeds give variations of the
// same prompt.
package imagegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/dmitrijs2005/retailmedia/internal/netx"
)

const (
	BaseURL = "https://image.pollinations.ai/prompt/"

	// DefaultVariations is how many images one generation produces.
	DefaultVariations = 4

	maxSeed = 1000000
	size    = 1280
)

// Style selects a prompt suffix.
type Style string

const (
	StyleStandard  Style = "standard"
	StyleRealistic Style = "realistic"
	StyleCinematic Style = "cinematic"
	Style3DRender  Style = "3d-render"
	StyleAnime     Style = "anime"
	StyleCyberpunk Style = "cyberpunk"
)

var stylePrompts = map[Style]string{
	StyleStandard:  ", high quality, 8k, detailed, sharp focus, vivid colors, highly detailed, perfect composition, uhd, hdr, accurate to prompt",
	StyleRealistic: ", photorealistic, 8k, raw photo, hyperrealistic, highly detailed, dslr, sharp focus, real life, detailed skin texture, masterpiece, best quality, live action adaptation, detailed facial features, photograph, 35mm, f/1.8, 8k uhd, hdr, accurate details",
	StyleCinematic: ", cinematic lighting, movie scene, 8k, detailed, dramatic lighting, imax, color graded, detailed background, atmospheric, film grain, wide angle, anamorphic lens, depth of field, 8k uhd, masterpiece",
	Style3DRender:  ", 3d render, unreal engine 5, octane render, ray tracing, 8k, highly detailed, c4d, blender, 3d model, volumetric lighting, digital art, 8k uhd",
	StyleAnime:     ", anime style, studio ghibli, vibrant colors, high quality, detailed character design, 2d, cel shaded, manga style, illustration, 8k, masterpiece",
	StyleCyberpunk: ", cyberpunk, neon lights, futuristic, high tech, detailed, night city, sci-fi, synthwave, blade runner style, glowing, 8k, highly detailed",
}

// Styles lists the known styles in display order.
func Styles() []Style {
	return []Style{StyleStandard, StyleRealistic, StyleCinematic, Style3DRender, StyleAnime, StyleCyberpunk}
}

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	_, ok := stylePrompts[s]
	return ok
}

var (
	animeWords     = []string{"anime", "manga", "naruto", "luffy", "goku", "one piece"}
	cyberpunkWords = []string{"cyberpunk", "neon", "future"}
	sakuraRe       = regexp.MustCompile(`(?i)sakura`)
)

// EffectiveStyle picks a style from prompt keywords when the standard style
// is selected. An explicit style is kept.
func EffectiveStyle(prompt string, selected Style) Style {
	if selected != StyleStandard && selected != "" {
		return selected
	}
	lower := strings.ToLower(prompt)
	if containsAny(lower, animeWords) {
		return StyleAnime
	}
	if containsAny(lower, cyberpunkWords) {
		return StyleCyberpunk
	}
	return StyleStandard
}

// RefinePrompt rewrites prompts the model commonly misreads.
func RefinePrompt(prompt string) string {
	lower := strings.ToLower(prompt)
	if strings.Contains(lower, "naruto") && strings.Contains(lower, "sakura") && !strings.Contains(lower, "haruno") {
		return sakuraRe.ReplaceAllString(prompt, "Sakura Haruno")
	}
	return prompt
}

// FullPrompt is the refined prompt followed by the style suffix.
func FullPrompt(prompt string, style Style) string {
	return RefinePrompt(prompt) + stylePrompts[EffectiveStyle(prompt, style)]
}

// URL returns the image URL for an already assembled prompt and a seed.
func URL(fullPrompt string, seed int) string {
	return fmt.Sprintf("%s%s?width=%d&height=%d&seed=%d&nologo=true&model=flux&enhance=true",
		BaseURL, netx.EncodeURIComponent(fullPrompt), size, size, seed)
}

// BuildURLs returns one URL per seed.
func BuildURLs(prompt string, style Style, seeds []int) []string {
	full := FullPrompt(prompt, style)
	urls := make([]string, len(seeds))
	for i, seed := range seeds {
		urls[i] = URL(full, seed)
	}
	return urls
}

// RandomSeeds returns n seeds in [0, 1000000).
func RandomSeeds(n int) []int {
	seeds := make([]int, n)
	for i := range seeds {
		seeds[i] = common.RandIntn(maxSeed)
	}
	return seeds
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
