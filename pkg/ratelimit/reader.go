// Package ratelimit caps the read bandwidth shared by all fingerprint workers.
package ratelimit

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// minBurst keeps small limits from degrading into byte-sized reads
const minBurst = 64 * 1024

// Limiter is a byte token bucket shared across readers
type Limiter struct {
	bytesPerSecond int64
	bucket         *rate.Limiter
}

// NewLimiter creates a limiter allowing bytesPerSecond on average with bursts
// of one second worth of data (at least 64KB). A non-positive rate returns
// nil, meaning no limiting.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	burst := bytesPerSecond
	if burst < minBurst {
		burst = minBurst
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		bucket:         rate.NewLimiter(rate.Limit(bytesPerSecond), int(burst)),
	}
}

// BytesPerSecond returns the configured rate
func (l *Limiter) BytesPerSecond() int64 {
	return l.bytesPerSecond
}

// Burst returns the largest single read the limiter admits
func (l *Limiter) Burst() int {
	return l.bucket.Burst()
}

// Reader wraps an io.Reader with bandwidth limiting
type Reader struct {
	reader  io.Reader
	limiter *Limiter
	ctx     context.Context
}

// NewReader wraps an io.Reader with rate limiting. A nil limiter returns
// reader unchanged.
func NewReader(ctx context.Context, reader io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return reader
	}
	return &Reader{reader: reader, limiter: limiter, ctx: ctx}
}

// Read waits for enough tokens to cover len(p), capped at the burst size,
// then reads. Tokens for bytes not delivered are not refunded.
func (r *Reader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return r.reader.Read(p)
	}

	if burst := r.limiter.Burst(); len(p) > burst {
		p = p[:burst]
	}
	if err := r.limiter.bucket.WaitN(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.reader.Read(p)
}

// ReadCloser wraps an io.ReadCloser with rate limiting
type ReadCloser struct {
	Reader
	closer io.Closer
}

// NewReadCloser wraps an io.ReadCloser with rate limiting. A nil limiter
// returns rc unchanged.
func NewReadCloser(ctx context.Context, rc io.ReadCloser, limiter *Limiter) io.ReadCloser {
	if limiter == nil {
		return rc
	}
	return &ReadCloser{
		Reader: Reader{reader: rc, limiter: limiter, ctx: ctx},
		closer: rc,
	}
}

// Close implements io.Closer
func (rc *ReadCloser) Close() error {
	return rc.closer.Close()
}

// Wrapper returns a function suitable for wrapping file readers with this
// limiter. A nil limiter yields a nil wrapper.
func (l *Limiter) Wrapper() func(ctx context.Context, rc io.ReadCloser) io.ReadCloser {
	if l == nil {
		return nil
	}
	return func(ctx context.Context, rc io.ReadCloser) io.ReadCloser {
		return NewReadCloser(ctx, rc, l)
	}
}
