// Package network implements tools backed by public network APIs.
package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"strings"

	"github.com/mesh-intelligence/toolbox/internal/widgets"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Location is the subset of a geolocation response the tool reports.
type Location struct {
	IP          string  `json:"ip"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	CountryName string  `json:"country_name"`
	CountryCode string  `json:"country_code"`
	Postal      string  `json:"postal"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
	Org         string  `json:"org"`

	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// IPLookup is the ip-lookup widget. Each run issues one GET to
// {BaseURL}/{ip}/json/, or {BaseURL}/json/ for the caller's own address.
type IPLookup struct {
	Client  *http.Client
	BaseURL string
}

// NewIPLookup creates an ip-lookup widget against baseURL.
func NewIPLookup(client *http.Client, baseURL string) *IPLookup {
	return &IPLookup{Client: client, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Lookup fetches the location of ip. An empty ip looks up the caller.
func (l *IPLookup) Lookup(ctx context.Context, ip string) (*Location, error) {
	url := l.BaseURL + "/json/"
	if ip != "" {
		addr, err := netip.ParseAddr(ip)
		if err != nil {
			return nil, types.InputError("%q is not an IP address", ip)
		}
		url = l.BaseURL + "/" + addr.String() + "/json/"
	}

	var loc Location
	if err := widgets.FetchJSON(ctx, l.Client, url, &loc); err != nil {
		return nil, err
	}
	if loc.Error {
		return nil, types.NetworkError("lookup failed", errors.New(loc.Reason))
	}
	return &loc, nil
}

// Run implements types.Widget.
func (l *IPLookup) Run(ctx context.Context, in types.Input) (types.Result, error) {
	loc, err := l.Lookup(ctx, in.Get("ip"))
	if err != nil {
		return types.Result{}, err
	}

	var place []string
	for _, p := range []string{loc.City, loc.Region, loc.CountryName} {
		if p != "" {
			place = append(place, p)
		}
	}
	res := types.Result{Output: loc.IP}
	res.Add("Location", strings.Join(place, ", "))
	if loc.Postal != "" {
		res.Add("Postal code", loc.Postal)
	}
	if loc.Latitude != 0 || loc.Longitude != 0 {
		res.Add("Coordinates", fmt.Sprintf("%.4f, %.4f", loc.Latitude, loc.Longitude))
	}
	if loc.Timezone != "" {
		res.Add("Timezone", loc.Timezone)
	}
	if loc.Org != "" {
		res.Add("Organization", loc.Org)
	}
	return res, nil
}
