package personalize

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"strings"
	"sync"

	"printshop/cartstore"
	"printshop/config"
	"printshop/models"
	"printshop/processing"
	"printshop/storage"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"
)

type State uint8

const (
	StateCollectingPhotos State = iota
	StateConfiguring
	StateSubmitting
	StateDone
)

var (
	ErrNoPhotos      = errors.New("at least one uploaded photo is required")
	ErrWrongState    = errors.New("operation not allowed in this state")
	ErrUnknownUnit   = errors.New("no such photo")
	ErrUnknownSize   = errors.New("selected size is not in the catalog")
	ErrNotImage      = errors.New("only image files are accepted")
	ErrBadOrientaton = errors.New("orientation must be portrait or landscape")
)

// Uploader is the slice of the image host the engine needs
type Uploader interface {
	UploadImage(path string, mimeType string, reader io.Reader) (url string, size int64, err error)
}

// Renderer produces the final crop raster for one unit. Swappable so tests
// can simulate render failures.
type Renderer interface {
	Render(unit *Unit, view Viewport) ([]byte, error)
}

// Viewport is the on-screen geometry the client cropped in
type Viewport struct {
	FrameWidth  float64 `json:"frameWidth"`
	FrameHeight float64 `json:"frameHeight"`
	DispWidth   float64 `json:"dispWidth"`
	DispHeight  float64 `json:"dispHeight"`
}

// Session is one shopper's personalisation flow: collect photos, configure
// them one at a time, then submit the whole batch to the cart.
type Session struct {
	mutex      sync.Mutex
	handle     cartstore.SessionHandle
	state      State
	current    int // index of the unit being configured
	nextHandle uint64
	units      []*Unit
}

// SessionStatus is the wire snapshot of a session
type SessionStatus struct {
	State   State   `json:"state"`
	Current int     `json:"current"`
	Units   []*Unit `json:"units"`
}

type Service struct {
	Renderer Renderer

	uploader       Uploader
	carts          *cartstore.Repository
	sizes          func() (models.SizeTable, error)
	maxUploadBytes int64
	previewEdge    uint
	sessions       cmap.ConcurrentMap[string, *Session]
}

func NewService(uploader Uploader, carts *cartstore.Repository, sizes func() (models.SizeTable, error)) *Service {
	return &Service{
		Renderer:       cropRenderer{},
		uploader:       uploader,
		carts:          carts,
		sizes:          sizes,
		maxUploadBytes: int64(config.UPLOAD_MAX_BYTES),
		previewEdge:    uint(config.PREVIEW_MAX_EDGE),
		sessions:       cmap.New[*Session](),
	}
}

// Session returns the personalisation session for the given cart session,
// creating it on first contact
func (s *Service) Session(handle cartstore.SessionHandle) *Session {
	return s.sessions.Upsert(string(handle), nil, func(exists bool, current, _ *Session) *Session {
		if exists {
			return current
		}
		return &Session{handle: handle}
	})
}

// AddPhoto validates, compresses, uploads and registers one source image.
// The full-resolution upload and the preview generation run concurrently.
func (s *Service) AddPhoto(sess *Session, name, mimeType string, reader io.Reader) (*Unit, error) {
	sess.mutex.Lock()
	defer sess.mutex.Unlock()
	if sess.state != StateCollectingPhotos {
		return nil, ErrWrongState
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrNotImage
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	compressed, err := processing.CompressUnder(s.maxUploadBytes, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	sizes, err := s.sizes()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	type uploadResult struct {
		url string
		err error
	}
	uploaded := make(chan uploadResult, 1)
	go func() {
		url, _, err := s.uploader.UploadImage(storage.FolderOriginals+"/"+id+".jpg", "image/jpeg", bytes.NewReader(compressed))
		uploaded <- uploadResult{url, err}
	}()
	preview, previewErr := processing.CreatePreview(s.previewEdge, bytes.NewReader(compressed))
	up := <-uploaded
	if previewErr != nil {
		return nil, previewErr
	}
	if up.err != nil {
		return nil, fmt.Errorf("image host upload failed: %w", up.err)
	}

	sess.nextHandle++
	unit := &Unit{
		Handle: sess.nextHandle,
		Photo: UploadedPhoto{
			ID:             id,
			SourceURL:      up.url,
			PreviewDataURI: preview.DataURI,
			NaturalWidth:   preview.NaturalWidth,
			NaturalHeight:  preview.NaturalHeight,
		},
		Config:   defaultConfiguration(sizes),
		original: compressed,
	}
	sess.units = append(sess.units, unit)
	return unit, nil
}

// RemovePhoto drops a pending photo before the configuration flow starts.
// The hosted original is left behind as an orphaned object.
func (s *Service) RemovePhoto(sess *Session, handle uint64) error {
	sess.mutex.Lock()
	defer sess.mutex.Unlock()
	if sess.state != StateCollectingPhotos {
		return ErrWrongState
	}
	for i := range sess.units {
		if sess.units[i].Handle == handle {
			sess.units = append(sess.units[:i], sess.units[i+1:]...)
			return nil
		}
	}
	return ErrUnknownUnit
}

// Begin moves the session from collecting photos to configuring the first one
func (s *Service) Begin(sess *Session) error {
	sess.mutex.Lock()
	defer sess.mutex.Unlock()
	if sess.state != StateCollectingPhotos {
		return ErrWrongState
	}
	if len(sess.units) == 0 {
		return ErrNoPhotos
	}
	sess.state = StateConfiguring
	sess.current = 0
	return nil
}

// Configure applies live zoom/pan/orientation/size changes to one unit.
// Scale is clamped, position is not.
func (s *Service) Configure(sess *Session, handle uint64, cfg CanvasConfiguration) error {
	sess.mutex.Lock()
	defer sess.mutex.Unlock()
	if sess.state != StateConfiguring {
		return ErrWrongState
	}
	unit := sess.unitByHandle(handle)
	if unit == nil {
		return ErrUnknownUnit
	}
	if cfg.Orientation != OrientationPortrait && cfg.Orientation != OrientationLandscape {
		return ErrBadOrientaton
	}
	sizes, err := s.sizes()
	if err != nil {
		return err
	}
	if sizes.ByID(cfg.SelectedSize) == nil {
		return ErrUnknownSize
	}
	cfg.ImageScale = clampScale(cfg.ImageScale)
	unit.Config = cfg
	return nil
}

// SaveAndContinue finalises the current photo: the crop raster is rendered
// now, not deferred, and its price is frozen from the size table. On the last
// photo it runs the batch submit instead of advancing. Returns true once the
// whole batch has landed in the cart.
//
// Any failure leaves the session on the failing photo with every previously
// finalised unit intact and nothing added to the cart.
func (s *Service) SaveAndContinue(sess *Session, view Viewport) (bool, error) {
	sess.mutex.Lock()
	defer sess.mutex.Unlock()
	if sess.state != StateConfiguring {
		return false, ErrWrongState
	}
	unit := sess.units[sess.current]
	sizes, err := s.sizes()
	if err != nil {
		return false, err
	}
	size := sizes.ByID(unit.Config.SelectedSize)
	if size == nil {
		return false, ErrUnknownSize
	}
	cropped, err := s.Renderer.Render(unit, view)
	if err != nil {
		return false, fmt.Errorf("crop render failed: %w", err)
	}
	unit.cropped = cropped
	unit.price = size.FinalPrice()

	if sess.current < len(sess.units)-1 {
		sess.current++
		return false, nil
	}
	sess.state = StateSubmitting
	if err := s.submit(sess); err != nil {
		sess.state = StateConfiguring
		return false, err
	}
	// Batch is in the cart; pending photos are folded in and the
	// session starts fresh
	sess.state = StateCollectingPhotos
	sess.units = nil
	sess.current = 0
	return true, nil
}

// submit uploads every rendered crop concurrently, then adds one silent cart
// line per unit. Any upload failure aborts before the cart is touched;
// already-uploaded crops stay behind as orphaned objects, which is accepted.
func (s *Service) submit(sess *Session) error {
	urls := make([]string, len(sess.units))
	errs := make([]error, len(sess.units))
	var wg sync.WaitGroup
	for i, unit := range sess.units {
		wg.Add(1)
		go func(i int, unit *Unit) {
			defer wg.Done()
			url, _, err := s.uploader.UploadImage(storage.FolderCrops+"/"+unit.Photo.ID+".jpg", "image/jpeg", bytes.NewReader(unit.cropped))
			urls[i] = url
			errs[i] = err
		}(i, unit)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			log.Printf("Crop upload failed for photo %s: %v", sess.units[i].Photo.ID, err)
			return fmt.Errorf("crop upload failed: %w", err)
		}
	}

	cart := s.carts.Load(sess.handle)
	for i, unit := range sess.units {
		cart.AddItem(models.CartItem{
			Quantity:          1,
			SelectedDimension: unit.Config.SelectedSize,
			Customization: &models.Customization{
				ModelID:          models.PersonalizedModelID,
				OriginalImageURL: unit.Photo.SourceURL,
				CroppedImageURL:  urls[i],
				SelectedSize:     unit.Config.SelectedSize,
				Orientation:      unit.Config.Orientation,
				Price:            unit.price,
			},
		})
	}
	return s.carts.Save(sess.handle, cart)
}

// Status snapshots the session for the storefront
func (s *Service) Status(sess *Session) SessionStatus {
	sess.mutex.Lock()
	defer sess.mutex.Unlock()
	units := make([]*Unit, len(sess.units))
	copy(units, sess.units)
	return SessionStatus{State: sess.state, Current: sess.current, Units: units}
}

func (sess *Session) unitByHandle(handle uint64) *Unit {
	for _, u := range sess.units {
		if u.Handle == handle {
			return u
		}
	}
	return nil
}

// cropRenderer is the production Renderer, backed by the crop math in the
// processing package
type cropRenderer struct{}

func (cropRenderer) Render(unit *Unit, view Viewport) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(unit.original))
	if err != nil {
		return nil, err
	}
	crop := processing.Crop{
		FrameWidth:  view.FrameWidth,
		FrameHeight: view.FrameHeight,
		DispWidth:   view.DispWidth,
		DispHeight:  view.DispHeight,
		NatWidth:    float64(unit.Photo.NaturalWidth),
		NatHeight:   float64(unit.Photo.NaturalHeight),
		Scale:       unit.Config.ImageScale,
		OffsetX:     unit.Config.PositionX,
		OffsetY:     unit.Config.PositionY,
	}
	var buf bytes.Buffer
	if err := crop.Render(img, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
