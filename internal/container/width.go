package container

// WidthProvider feeds measured widths to a Container, so the container never
// measures itself. Any host can substitute its own width source.
type WidthProvider struct {
	c        *Container
	sizes    <-chan float64
	last     float64
	measured bool
}

// NewWidthProvider creates a provider for c. sizes carries content-box
// widths from the host's resize observation; it may be nil when the host
// only calls Observe.
func NewWidthProvider(c *Container, sizes <-chan float64) *WidthProvider {
	return &WidthProvider{c: c, sizes: sizes}
}

// Observe applies a measured width. Repeated widths are ignored.
func (w *WidthProvider) Observe(width float64) {
	if width < 0 {
		width = 0
	}
	if w.measured && width == w.last {
		return
	}
	w.measured = true
	w.last = width
	props := w.c.Props()
	props.Width = width
	w.c.SetProps(props)
}

// Start forwards widths from the sizes channel onto eventQueue, so they are
// applied on the host's event loop goroutine. It returns immediately and
// stops when sizes closes or stopCh fires.
func (w *WidthProvider) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	if w.sizes == nil {
		return
	}
	go func() {
		for {
			select {
			case <-stopCh:
				return
			case width, ok := <-w.sizes:
				if !ok {
					return
				}
				select {
				case eventQueue <- func() { w.Observe(width) }:
				case <-stopCh:
					return
				}
			}
		}
	}()
}
