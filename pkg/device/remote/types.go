package remote

type EmptyRequest struct {
}

type EmptyResponse struct {
}

type SizeResponse struct {
	Width  int
	Height int
}

type DrawRequest struct {
	Image []byte // PNG
}

type FrameRequest struct {
	Frame []byte // wire frame
}
