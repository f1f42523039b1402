package assets

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// DefaultCDNHost is the asset host used when CDNBuilder.Host is empty.
const DefaultCDNHost = "https://cdn.sanity.io"

var (
	reImageID = regexp.MustCompile(`^image-([A-Za-z0-9]+)-(\d+x\d+)-([a-z0-9]+)$`)
	reFileID  = regexp.MustCompile(`^file-([A-Za-z0-9]+)-([a-z0-9]+)$`)
)

// CDNBuilder builds asset URLs of the form
//
//	<host>/images/<project>/<dataset>/<hash>-<w>x<h>.<ext>
//	<host>/files/<project>/<dataset>/<hash>.<ext>
//
// from ids like "image-<hash>-<w>x<h>-<ext>" and "file-<hash>-<ext>".
type CDNBuilder struct {
	Host      string
	ProjectID string
	Dataset   string
}

// Build implements Builder.
func (b CDNBuilder) Build(assetID string) (string, error) {
	if b.ProjectID == "" || b.Dataset == "" {
		return "", fmt.Errorf("assets: builder missing project or dataset")
	}
	host := b.Host
	if host == "" {
		host = DefaultCDNHost
	}
	base, err := url.Parse(host)
	if err != nil || base.Scheme == "" {
		return "", fmt.Errorf("assets: invalid cdn host %q", host)
	}

	id := strings.TrimSpace(assetID)
	var kind, file string
	if m := reImageID.FindStringSubmatch(id); m != nil {
		kind, file = "images", m[1]+"-"+m[2]+"."+m[3]
	} else if m := reFileID.FindStringSubmatch(id); m != nil {
		kind, file = "files", m[1]+"."+m[2]
	} else {
		return "", fmt.Errorf("%w: %q", ErrMalformedRef, assetID)
	}
	base.Path = path.Join(base.Path, kind, b.ProjectID, b.Dataset, file)
	return base.String(), nil
}
