package httpclient

import "io"

// progressReader reports cumulative bytes read to a ProgressFunc.
type progressReader struct {
	r      io.Reader
	total  int64
	loaded int64
	notify ProgressFunc
}

func newProgressReader(r io.Reader, contentLength int64, notify ProgressFunc) *progressReader {
	return &progressReader{r: r, total: contentLength, notify: notify}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		p.notify(Progress{
			Loaded:           p.loaded,
			Total:            max(p.total, 0),
			LengthComputable: p.total >= 0,
		})
	}
	return n, err
}
