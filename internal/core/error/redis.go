package errx

// WrapRedis wraps a Redis error with a consistent kind and message so the
// conversation repository reports failures uniformly. History failures never
// abort a run on their own, so the error is non-fatal.
func WrapRedis(err error) *AppError {
	if err == nil {
		return nil
	}
	return New(err, KindInternal, false, RedisErrorMessage)
}
