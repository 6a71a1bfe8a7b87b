package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
)

const defaultOutputFilename = "campaign_post.png"

// AssetManager locates existing campaign assets and owns the output
// directory layout: output/<product_id>/<aspect_ratio>/<filename>.
type AssetManager struct {
	campaignRoot string
	assetsDir    string
	outputDir    string
}

// NewAssetManager creates the manager for one campaign directory and
// ensures the output directory exists.
func NewAssetManager(campaignRoot string) (*AssetManager, error) {
	m := &AssetManager{
		campaignRoot: campaignRoot,
		assetsDir:    filepath.Join(campaignRoot, "assets"),
		outputDir:    filepath.Join(campaignRoot, "output"),
	}
	if err := os.MkdirAll(m.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return m, nil
}

// OutputDir returns the campaign's output directory.
func (m *AssetManager) OutputDir() string {
	return m.outputDir
}

// FindAsset resolves an asset reference from the brief to an existing
// file. It tries the reference relative to the campaign root first, then
// the reference's base name inside the assets/ directory. A miss is not
// an error: it is the signal to generate the asset instead.
func (m *AssetManager) FindAsset(reference string) (string, bool) {
	if reference == "" {
		return "", false
	}

	fullPath := filepath.Join(m.campaignRoot, reference)
	if fileExists(fullPath) {
		return fullPath, true
	}

	assetsPath := filepath.Join(m.assetsDir, filepath.Base(reference))
	if fileExists(assetsPath) {
		return assetsPath, true
	}

	return "", false
}

// LoadImage decodes an image file, normalizing EXIF orientation. An
// unreadable file is an error the caller treats as fatal.
func (m *AssetManager) LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	return img, nil
}

// SaveOutput writes a rendered image to the canonical output location
// for the given product and aspect ratio, creating directories as needed
// and overwriting any previous render.
func (m *AssetManager) SaveOutput(img image.Image, productID, aspectRatioName, filename string) (string, error) {
	dir := filepath.Join(m.outputDir, productID, aspectRatioName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, filename)
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return path, nil
}

// OutputStructure scans the output tree and maps each product ID to its
// rendered files as "<aspect_ratio>/<filename>" entries, sorted for
// stable listings.
func (m *AssetManager) OutputStructure() (map[string][]string, error) {
	structure := make(map[string][]string)

	products, err := os.ReadDir(m.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return structure, nil
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	for _, product := range products {
		if !product.IsDir() {
			continue
		}
		productDir := filepath.Join(m.outputDir, product.Name())
		ratios, err := os.ReadDir(productDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", productDir, err)
		}

		var files []string
		for _, ratio := range ratios {
			if !ratio.IsDir() {
				continue
			}
			matches, err := filepath.Glob(filepath.Join(productDir, ratio.Name(), "*.png"))
			if err != nil {
				return nil, err
			}
			for _, match := range matches {
				files = append(files, filepath.Join(ratio.Name(), filepath.Base(match)))
			}
		}
		sort.Strings(files)
		structure[product.Name()] = files
	}

	return structure, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
