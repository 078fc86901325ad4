// Package guidance implements the tools that perform no processing and
// instead explain how to get the job done elsewhere. They never touch the
// network or the uploaded data.
package guidance

import (
	"context"
	"net/url"
	"strings"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Platform is a social media site the downloader guide knows about.
type Platform struct {
	Name  string
	Hosts []string
	Link  string
	Steps []string
}

// Platforms lists the sites with specific guidance.
var Platforms = []Platform{
	{
		Name:  "YouTube",
		Hosts: []string{"youtube.com", "youtu.be"},
		Link:  "https://support.google.com/youtube/answer/11977233",
		Steps: []string{"Open the video in the YouTube app.", "Tap Download below the player (YouTube Premium).", "Find it later under Library, Downloads."},
	},
	{
		Name:  "Instagram",
		Hosts: []string{"instagram.com"},
		Link:  "https://help.instagram.com/181231772500920",
		Steps: []string{"Open Settings, Your activity, Download your information.", "Request a download of your own posts and reels.", "Use the link Instagram emails you."},
	},
	{
		Name:  "TikTok",
		Hosts: []string{"tiktok.com"},
		Link:  "https://support.tiktok.com/en/using-tiktok/exploring-videos/downloading-videos",
		Steps: []string{"Tap Share on the video.", "Choose Save video if the creator allows downloads."},
	},
	{
		Name:  "X",
		Hosts: []string{"x.com", "twitter.com"},
		Link:  "https://help.x.com/en/managing-your-account/how-to-download-your-x-archive",
		Steps: []string{"Open Settings, Your account, Download an archive of your data.", "Media you posted is included in the archive."},
	},
}

var genericSteps = []string{
	"Check whether the platform offers a built-in download or archive option.",
	"Only download content you own or have permission to save.",
}

// PlatformFor returns the platform hosting rawURL.
func PlatformFor(rawURL string) (Platform, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return Platform{}, false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	for _, p := range Platforms {
		for _, h := range p.Hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return p, true
			}
		}
	}
	return Platform{}, false
}

// SocialMediaDownloader returns the social-media-downloader guide. An
// optional url field selects platform-specific steps.
func SocialMediaDownloader() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		res := types.Result{Status: "Guidance"}
		raw := in.Get("url")
		if raw == "" {
			res.Output = strings.Join(genericSteps, "\n")
			return res, nil
		}
		p, ok := PlatformFor(raw)
		if !ok {
			return types.Result{}, types.InputError("no guidance for %q; supported: %s", raw, platformNames())
		}
		res.Output = strings.Join(append(append([]string{}, p.Steps...), genericSteps[1]), "\n")
		res.Add("Platform", p.Name).Add("Official help", p.Link)
		return res, nil
	})
}

func platformNames() string {
	names := make([]string, len(Platforms))
	for i, p := range Platforms {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

var backgroundSteps = []string{
	"Open the image in an editor with subject selection (for example GIMP: Select, Foreground Select).",
	"Refine the selection edge, then invert it and delete the background.",
	"Export as PNG to keep the transparent background.",
}

// BackgroundRemover returns the background-remover guide.
func BackgroundRemover() types.Widget {
	return types.WidgetFunc(func(_ context.Context, _ types.Input) (types.Result, error) {
		res := types.Result{Output: strings.Join(backgroundSteps, "\n"), Status: "Guidance"}
		res.Add("GIMP manual", "https://docs.gimp.org/en/gimp-tool-foreground-select.html")
		return res, nil
	})
}
