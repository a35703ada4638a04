package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/anima/engine/assets/loaders"
	"github.com/spaghettifunk/anima/engine/assimp"
	"github.com/spaghettifunk/anima/engine/containers"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/resources"
	"github.com/spaghettifunk/anima/engine/scene"
)

var ErrManagerClosed = errors.New("asset manager already closed")

const historySize = 32

type AssetInfo struct {
	Path       string
	Type       resources.ResourceType
	LastLoaded time.Time
}

// AssetEvent reports a change below the watched directory. For model files
// Scene holds the fresh import, or Err why it failed; both are nil unless
// the manager reimports on change.
type AssetEvent struct {
	Path  string
	Type  resources.ResourceType
	Op    fsnotify.Op
	Scene *scene.Scene
	Err   error
}

type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[resources.ResourceType]Loader

	importer *assimp.Importer
	flags    assimp.Process
	reimport bool

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	started  bool
	events   chan AssetEvent
	errors   chan error
	history  *containers.RingQueue[AssetEvent]
}

type AssetManagerOption func(am *AssetManager)

// WithImportFlags sets the post-processing steps used by LoadModel and by
// reimports.
func WithImportFlags(flags assimp.Process) AssetManagerOption {
	return func(am *AssetManager) {
		am.flags = flags
	}
}

// WithReimport makes the manager import model files again as soon as they
// are created or written, delivering the result on Events.
func WithReimport(enable bool) AssetManagerOption {
	return func(am *AssetManager) {
		am.reimport = enable
	}
}

// NewAssetManager loads models through importer. The manager does not own
// the importer; close it after the manager.
func NewAssetManager(importer *assimp.Importer, opts ...AssetManagerOption) (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[resources.ResourceType]Loader),
		importer: importer,
		fsnotify: fsWatch,
		events:   make(chan AssetEvent, 64),
		errors:   make(chan error, 16),
		done:     make(chan struct{}),
		history:  containers.NewRingQueue[AssetEvent](historySize),
	}
	for _, opt := range opts {
		opt(am)
	}

	// Register loaders
	am.registerLoader(resources.ResourceTypeModel, loaders.NewModelLoader(importer))
	am.registerLoader(resources.ResourceTypeImage, &loaders.TextureLoader{})

	return am, nil
}

// Initialize indexes assetsDir and starts watching it and all of its
// sub-directories.
func (am *AssetManager) Initialize(assetsDir string) error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return ErrManagerClosed
	}
	if !am.started {
		am.started = true
		go am.start()
	}
	am.mutex.Unlock()

	if err := am.addRecursive(assetsDir); err != nil {
		return err
	}
	core.LogInfo("asset manager watching %s (%d assets)", assetsDir, len(am.Assets()))
	return nil
}

// Events delivers one event per change of a tracked file. The channel is
// closed by Close.
func (am *AssetManager) Events() <-chan AssetEvent {
	return am.events
}

// Errors delivers watcher failures. The channel is closed by Close.
func (am *AssetManager) Errors() <-chan error {
	return am.errors
}

// Close stops watching. It is safe to call more than once.
func (am *AssetManager) Close() error {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	if !am.started {
		close(am.events)
		close(am.errors)
		return am.fsnotify.Close()
	}
	return nil
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.closed() {
		return ErrManagerClosed
	}
	return am.watchRecursive(name, false)
}

// Unwatch stops watching the named directory and all sub-directories.
// Files already indexed stay in Assets.
func (am *AssetManager) Unwatch(name string) error {
	return am.watchRecursive(name, true)
}

func (am *AssetManager) closed() bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return am.isClosed
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType resources.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Assets lists the tracked files sorted by path.
func (am *AssetManager) Assets() []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	out := make([]AssetInfo, 0, len(am.assets))
	for _, a := range am.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// History returns the most recent events, oldest first, whether or not
// they were read from Events.
func (am *AssetManager) History() []AssetEvent {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return am.history.Items()
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(path string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	loader, loaderExists := am.loaders[resourceType]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type %s: %w", resourceType, core.ErrUnsupportedFormat)
	}

	res, err := loader.Load(path, resourceType, params)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	if asset, exists := am.assets[path]; exists {
		asset.LastLoaded = time.Now()
		am.assets[path] = asset // Update the loaded time
	}
	am.mutex.Unlock()
	return res, nil
}

func (am *AssetManager) UnloadAsset(res *resources.Resource) error {
	loader, loaderExists := am.loaders[res.Type]
	if !loaderExists {
		return fmt.Errorf("no loader registered for asset type %s: %w", res.Type, core.ErrUnsupportedFormat)
	}
	return loader.Unload(res)
}

// LoadModel imports a model from a local path or an http(s) URL. Local
// files are read by the native importer so side files such as materials
// resolve; remote files are fetched and imported from memory.
func (am *AssetManager) LoadModel(location string) (*scene.Scene, error) {
	src, err := NewSource(location, nil)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	params := &resources.ModelResourceParams{Flags: uint32(am.flags)}
	if src.IsRemote() {
		params.Reader = src
		params.Hint = src.Ext()
	}

	res, err := am.LoadAsset(src.Path(), resources.ResourceTypeModel, params)
	if err != nil {
		return nil, err
	}
	return res.Data.(*scene.Scene), nil
}

// LoadTexture decodes the image at path, or the embedded texture the path
// refers to when sc holds one.
func (am *AssetManager) LoadTexture(sc *scene.Scene, path string) (*resources.ImageResourceData, error) {
	params := &resources.ImageResourceParams{}
	if sc != nil {
		params.Embedded = sc.Texture(path)
		if params.Embedded == nil && sc.Source != "" && !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(sc.Source), path)
		}
	}
	res, err := am.LoadAsset(path, resources.ResourceTypeImage, params)
	if err != nil {
		return nil, err
	}
	return res.Data.(*resources.ImageResourceData), nil
}

func (am *AssetManager) start() {
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name, false)
				}
				continue
			}
			var assetType resources.ResourceType
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				assetType = am.handleFileEvent(e.Name)
			}
			//Can't stat a deleted directory, so just pretend that it's always a directory and
			//try to remove from the watch list...  we really have no clue if it's a directory or not...
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				assetType = am.removeAsset(e.Name)
				am.fsnotify.Remove(e.Name)
			}
			if assetType == resources.ResourceTypeNone {
				continue
			}
			am.emit(am.newEvent(e, assetType))

		case e, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(e.Error())
			select {
			case am.errors <- e:
			default:
			}

		case <-am.done:
			am.fsnotify.Close()
			close(am.events)
			close(am.errors)
			return
		}
	}
}

func (am *AssetManager) newEvent(e fsnotify.Event, assetType resources.ResourceType) AssetEvent {
	ev := AssetEvent{Path: e.Name, Type: assetType, Op: e.Op}
	if am.reimport && assetType == resources.ResourceTypeModel && e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		ev.Scene, ev.Err = am.LoadModel(e.Name)
		if ev.Err != nil {
			core.LogWarn("reimport of %s failed: %s", e.Name, ev.Err)
		}
	}
	return ev
}

func (am *AssetManager) emit(ev AssetEvent) {
	am.mutex.Lock()
	am.history.Push(ev)
	am.mutex.Unlock()

	select {
	case am.events <- ev:
	case <-am.done:
	}
}

// watchRecursive adds all directories under the given one to the watch list.
// this is probably a very racey process. What if a file is added to a folder before we get the watch added?
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				if err = am.fsnotify.Remove(walkPath); err != nil {
					return err
				}
			} else {
				if err = am.fsnotify.Add(walkPath); err != nil {
					return err
				}
			}
		} else if !unWatch {
			am.handleFileEvent(walkPath)
		}
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) resources.ResourceType {
	assetType := DetermineAssetType(path)
	if assetType == resources.ResourceTypeNone {
		return assetType
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	am.assets[path] = AssetInfo{
		Path: path,
		Type: assetType,
	}
	return assetType
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) resources.ResourceType {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	asset, ok := am.assets[path]
	if !ok {
		return resources.ResourceTypeNone
	}
	delete(am.assets, path)
	return asset.Type
}

// DetermineAssetType classifies path by extension. Anything the native
// importer reads is a model.
func DetermineAssetType(path string) resources.ResourceType {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "":
		return resources.ResourceTypeNone
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp":
		return resources.ResourceTypeImage
	case ".mtl":
		return resources.ResourceTypeMaterial
	}
	if assimp.IsExtensionSupported(ext) {
		return resources.ResourceTypeModel
	}
	return resources.ResourceTypeNone
}
