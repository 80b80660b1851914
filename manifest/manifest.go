// Package manifest assembles the datapackage.json manifest: it hashes
// the three byte blobs the packaging layer hands it and produces the
// JSON structure WACZ readers use to verify archive integrity.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// waczVersion is the WACZ specification version this manifest declares
// conformance to.
const waczVersion = "1.1.1"

// software identifies the tool that produced the archive.
const software = "waczindex 0.1.0"

// Resource is one entry in the manifest's resources array.
type Resource struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Hash  string `json:"hash"`
	Bytes int    `json:"bytes"`
}

// Manifest is the datapackage.json document.
type Manifest struct {
	Profile     string     `json:"profile"`
	WACZVersion string     `json:"wacz_version"`
	Created     string     `json:"created"`
	Software    string     `json:"software"`
	Resources   []Resource `json:"resources"`
}

// cdxjPath and pagesPath are the fixed archive-relative paths of the index
// and pages resources; the *ResourceName constants are the names the
// manifest gives each of its three resources.
const (
	cdxjPath  = "indexes/index.cdxj"
	pagesPath = "pages/pages.jsonl"

	warcResourceName  = "web_archive_file"
	cdxjResourceName  = "crawl_index"
	pagesResourceName = "pages_file"
)

// Build assembles a Manifest describing the WARC file at warcName (its
// final path component used as the archive-relative resource path under
// archive/), the CDXJ bytes, and the pages JSONL bytes. now stamps the
// manifest's Created field; callers pass time.Now() in production and a
// fixed instant in tests.
func Build(warcName string, warcBytes, cdxjBytes, pagesBytes []byte, now time.Time) Manifest {
	m := Manifest{
		Profile:     "data-package",
		WACZVersion: waczVersion,
		Created:     now.Format(time.RFC3339),
		Software:    software,
	}

	m.Resources = []Resource{
		newResource(warcResourceName, "archive/"+warcName, warcBytes),
		newResource(cdxjResourceName, cdxjPath, cdxjBytes),
		newResource(pagesResourceName, pagesPath, pagesBytes),
	}

	return m
}

func newResource(name, path string, content []byte) Resource {
	sum := sha256.Sum256(content)
	return Resource{
		Name:  name,
		Path:  path,
		Hash:  fmt.Sprintf("sha256:%x", sum),
		Bytes: len(content),
	}
}

// Marshal serializes m as compact JSON.
func (m Manifest) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Digest re-marshals m and hashes the resulting bytes with SHA-256,
// returning the archive-relative path the manifest is written to and its
// digest. Nothing in this module stores the digest: wacz.Write takes no
// digest argument, and the CLI only logs it at debug level.
func Digest(m Manifest) (path, hash string, err error) {
	body, err := m.Marshal()
	if err != nil {
		return "", "", err
	}
	sum := sha256.Sum256(body)
	return "datapackage.json", fmt.Sprintf("sha256:%x", sum), nil
}
