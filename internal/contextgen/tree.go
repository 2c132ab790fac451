// internal/contextgen/tree.go
package contextgen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultTreeDepth matches `tree -L 4`.
const DefaultTreeDepth = 4

// TreeRenderer produces the text of the "Directory Structure" section.
type TreeRenderer interface {
	RenderTree(root string, excludePatterns []string) (string, error)
}

// NewTreeRenderer returns the renderer registered under kind:
// "exec" (external tree command), "builtin" or "none".
func NewTreeRenderer(kind string, depth int) (TreeRenderer, error) {
	switch kind {
	case "", "exec":
		return &ExecTreeRenderer{Command: "tree", Depth: depth}, nil
	case "builtin":
		return &BuiltinTreeRenderer{Depth: depth}, nil
	case "none":
		return NoopTreeRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown tree renderer %q (want exec, builtin or none)", kind)
	}
}

// RenderTreeBestEffort runs r and swallows any failure; the section is then empty.
func RenderTreeBestEffort(r TreeRenderer, root string, excludePatterns []string) string {
	if r == nil {
		return ""
	}
	out, err := r.RenderTree(root, excludePatterns)
	if err != nil {
		slog.Warn("Directory structure unavailable, leaving section empty.", "root", root, "error", err)
		return ""
	}
	return out
}

// NoopTreeRenderer always renders nothing.
type NoopTreeRenderer struct{}

// RenderTree implements TreeRenderer.
func (NoopTreeRenderer) RenderTree(string, []string) (string, error) { return "", nil }

// ExecTreeRenderer shells out to the `tree` utility.
type ExecTreeRenderer struct {
	Command string
	Depth   int
	Timeout time.Duration
}

// RenderTree implements TreeRenderer.
func (r *ExecTreeRenderer) RenderTree(root string, excludePatterns []string) (string, error) {
	command := r.Command
	if command == "" {
		command = "tree"
	}
	bin, err := exec.LookPath(command)
	if err != nil {
		return "", fmt.Errorf("tree command unavailable: %w", err)
	}

	depth := r.Depth
	if depth <= 0 {
		depth = DefaultTreeDepth
	}
	args := []string{"-N", "-L", strconv.Itoa(depth)}
	if len(excludePatterns) > 0 {
		args = append(args, "-I", strings.Join(excludePatterns, "|"))
	}
	args = append(args, root)

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	slog.Debug("Running tree command.", "bin", bin, "args", args)
	out, err := exec.CommandContext(ctx, bin, args...).Output()
	if err != nil {
		return "", fmt.Errorf("running %s: %w", command, err)
	}
	return string(out), nil
}

// BuiltinTreeRenderer draws the tree in-process, in the same shape as `tree -N`.
type BuiltinTreeRenderer struct {
	Depth int
}

// TreeNode is one filesystem entry in the rendered tree.
type TreeNode struct {
	Name     string
	IsDir    bool
	Children []*TreeNode
}

// RenderTree implements TreeRenderer.
func (r *BuiltinTreeRenderer) RenderTree(root string, excludePatterns []string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	depth := r.Depth
	if depth <= 0 {
		depth = DefaultTreeDepth
	}
	node := &TreeNode{Name: root, IsDir: true}
	buildTree(node, root, excludePatterns, 1, depth)

	var b strings.Builder
	b.WriteString(root)
	b.WriteString("\n")
	dirs, files := printTreeRecursive(&b, node.Children, "")
	fmt.Fprintf(&b, "\n%d %s, %d %s\n", dirs, plural(dirs, "directory", "directories"), files, plural(files, "file", "files"))
	return b.String(), nil
}

func buildTree(node *TreeNode, dir string, excludePatterns []string, level, maxDepth int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Debug("Tree: cannot read directory.", "path", dir, "error", err)
		return
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		if match, _ := MatchAny(e.Name(), excludePatterns); match {
			continue
		}
		child := &TreeNode{Name: e.Name(), IsDir: e.IsDir()}
		node.Children = append(node.Children, child)
		if child.IsDir && level < maxDepth {
			buildTree(child, filepath.Join(dir, e.Name()), excludePatterns, level+1, maxDepth)
		}
	}
}

func printTreeRecursive(b *strings.Builder, children []*TreeNode, indent string) (dirs, files int) {
	for i, node := range children {
		isLast := i == len(children)-1
		connector, childIndent := "├── ", indent+"│   "
		if isLast {
			connector, childIndent = "└── ", indent+"    "
		}
		b.WriteString(indent)
		b.WriteString(connector)
		b.WriteString(node.Name)
		b.WriteString("\n")

		if !node.IsDir {
			files++
			continue
		}
		dirs++
		d, f := printTreeRecursive(b, node.Children, childIndent)
		dirs += d
		files += f
	}
	return dirs, files
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
