package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/templify"
)

// RenderInput names the files a render reads: one template and the variable
// stores merged in order.
type RenderInput struct {
	TemplatePath string
	StorePaths   []string

	// Dir is set when the input was given as a single directory.
	Dir string
}

// ResolveRenderInput turns command line arguments into a RenderInput.
//
// A single directory argument means dir/template.tmpl plus every .yaml and .yml file
// in the directory in lexical order. Otherwise the arguments are files: exactly
// one .tmpl template and any number of .yaml/.yml stores, kept in the given order.
func ResolveRenderInput(args []string) (*RenderInput, error) {
	if len(args) == 0 {
		return nil, templify.Errorf(templify.EINVALID, "no render input given")
	}

	if len(args) == 1 {
		fi, err := os.Stat(args[0])
		if err != nil {
			return nil, statError(args[0], err)
		}
		if fi.IsDir() {
			return resolveDir(args[0])
		}
	}

	in := &RenderInput{}
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, statError(arg, err)
		}
		if fi.IsDir() {
			return nil, templify.Errorf(templify.EINVALID, "%s is a directory; pass a directory alone or a list of files", arg)
		}

		switch strings.ToLower(filepath.Ext(arg)) {
		case ".tmpl":
			if in.TemplatePath != "" {
				return nil, templify.Errorf(templify.EINVALID, "more than one template given: %s and %s", in.TemplatePath, arg)
			}
			in.TemplatePath = arg
		case ".yaml", ".yml":
			in.StorePaths = append(in.StorePaths, arg)
		default:
			return nil, templify.Errorf(templify.EINVALID, "unsupported input %s: expected a .tmpl template or .yaml store", arg)
		}
	}

	if in.TemplatePath == "" {
		return nil, templify.Errorf(templify.EINVALID, "no .tmpl template among the inputs")
	}
	return in, nil
}

func resolveDir(dir string) (*RenderInput, error) {
	tmpl := filepath.Join(dir, TemplateFile)
	if _, err := os.Stat(tmpl); err != nil {
		return nil, statError(tmpl, err)
	}

	var stores []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		stores = append(stores, matches...)
	}
	sort.Strings(stores)

	return &RenderInput{TemplatePath: tmpl, StorePaths: stores, Dir: dir}, nil
}

// Paths returns every input file, template first.
func (in *RenderInput) Paths() []string {
	return append([]string{in.TemplatePath}, in.StorePaths...)
}

// DefaultOutput returns rendered.html next to the template.
func (in *RenderInput) DefaultOutput() string {
	return filepath.Join(filepath.Dir(in.TemplatePath), OutputFile)
}

// Load reads the template and decodes every store with store.
func (in *RenderInput) Load(store templify.VariableStore) (string, []*templify.Group, error) {
	tmpl, err := ReadDocument(in.TemplatePath)
	if err != nil {
		return "", nil, err
	}

	var groups []*templify.Group
	for _, path := range in.StorePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", nil, statError(path, err)
		}
		gs, err := store.UnmarshalGroups(data)
		if err != nil {
			return "", nil, templify.Errorf(templify.ErrorCode(err), "%s: %s", path, templify.ErrorMessage(err))
		}
		groups = append(groups, gs...)
	}
	return tmpl, groups, nil
}

// ReadDocument reads a whole file as text.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", statError(path, err)
	}
	return string(data), nil
}

// WriteFile replaces path with data through a temporary file in the same directory.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(f.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

func statError(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return templify.Errorf(templify.ENOTFOUND, "%s not found", path)
	}
	return fmt.Errorf("%s: %w", path, err)
}
