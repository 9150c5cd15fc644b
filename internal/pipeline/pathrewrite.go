package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// ErrPathRewrite reports HTML that could not be parsed for path rewriting.
var ErrPathRewrite = errors.New("rewriting relative paths failed")

// rewrittenAttrs lists, per element, the attribute pointing at a local file.
// Logos and stylesheets are the only resources document templates load.
var rewrittenAttrs = map[string]string{
	"img":  "src",
	"link": "href",
}

// PathRewriter resolves relative resource references against a directory.
type PathRewriter interface {
	RewriteRelativePaths(ctx context.Context, htmlContent, assetDir string) (string, error)
}

var _ PathRewriter = (*AssetPathRewriter)(nil)

// AssetPathRewriter turns relative img[src] and link[href] values into
// file:// URLs under the asset directory. The printed HTML lives in a temp
// file, so relative references would otherwise resolve against the temp dir.
type AssetPathRewriter struct{}

// RewriteRelativePaths returns htmlContent with relative references resolved
// against assetDir. An empty assetDir returns the HTML unchanged.
// References that are absolute, URLs, data URIs or escape assetDir are kept.
func (p *AssetPathRewriter) RewriteRelativePaths(ctx context.Context, htmlContent, assetDir string) (string, error) {
	if assetDir == "" {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	absDir, err := filepath.Abs(assetDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPathRewrite, err)
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPathRewrite, err)
	}

	if !rewriteNode(doc, absDir) {
		return htmlContent, nil
	}

	var buf strings.Builder
	buf.Grow(len(htmlContent) + 256)
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPathRewrite, err)
	}
	return buf.String(), nil
}

// rewriteNode walks the tree and reports whether any attribute changed.
func rewriteNode(n *html.Node, dir string) bool {
	changed := false
	if n.Type == html.ElementNode {
		if key, ok := rewrittenAttrs[n.Data]; ok {
			changed = rewriteAttr(n, key, dir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if rewriteNode(c, dir) {
			changed = true
		}
	}
	return changed
}

func rewriteAttr(n *html.Node, key, dir string) bool {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}
		absPath := filepath.Join(dir, attr.Val)
		if !isPathUnderDir(absPath, dir) {
			continue
		}
		n.Attr[i].Val = pathToFileURL(absPath)
		return true
	}
	return false
}

func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if u, err := url.Parse(path); err != nil || u.Scheme != "" {
		return false
	}
	return !filepath.IsAbs(path)
}

// isPathUnderDir checks that absPath stays inside dir once cleaned.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL, Windows included.
func pathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
