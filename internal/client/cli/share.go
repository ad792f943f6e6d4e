package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/netx"
)

// sharePlatforms lists the targets accepted by share.
var sharePlatforms = []string{"whatsapp", "twitter", "email", "sms", "facebook", "instagram"}

func shareText(c models.Creative) string {
	return fmt.Sprintf("Check out %s by %s!", c.ProductName, c.BrandName)
}

// shareURL returns the link that opens platform with a prefilled message.
func shareURL(platform string, c models.Creative) (string, error) {
	text := netx.EncodeURIComponent(shareText(c))
	switch strings.ToLower(platform) {
	case "whatsapp":
		return "https://wa.me/?text=" + text, nil
	case "twitter", "x":
		return "https://twitter.com/intent/tweet?text=" + text, nil
	case "email", "mail":
		subject := netx.EncodeURIComponent("Campaign: " + c.ProductName)
		return "mailto:?subject=" + subject + "&body=" + text, nil
	case "sms":
		return "sms:?body=" + text, nil
	case "facebook", "messenger":
		return "https://www.facebook.com/messages/", nil
	case "instagram":
		return "https://www.instagram.com/direct/inbox/", nil
	default:
		return "", fmt.Errorf("unknown platform %q (%s)", platform, strings.Join(sharePlatforms, ", "))
	}
}

// Share prints a share link for a creative.
func (a *App) Share(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: share <id> <%s>", strings.Join(sharePlatforms, "|"))
	}
	c, err := a.creative(ctx, args[:1])
	if err != nil {
		return err
	}
	link, err := shareURL(args[1], *c)
	if err != nil {
		return err
	}
	printlnFn(link)
	return nil
}
