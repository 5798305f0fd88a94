package minisql

type Stream[T any] struct {
	name string
	gen  func() (T, bool, error)
}

func (s *Stream[T]) Next() (T, bool, error) {
	return s.gen()
}

func (s *Stream[T]) filter(f func(T) (bool, error)) *Stream[T] {
	var t T
	return &Stream[T]{
		s.name + ".filter",
		func() (T, bool, error) {
			for {
				r, done, err := s.Next()
				if done || err != nil {
					return t, done, err
				}
				ok, err := f(r)
				if err != nil {
					return r, false, err
				}
				if ok {
					return r, false, nil
				}
			}
		},
	}
}

// skip drops the first n items.
func (s *Stream[T]) skip(n int) *Stream[T] {
	skipped := false
	return &Stream[T]{
		s.name + ".skip",
		func() (T, bool, error) {
			if !skipped {
				skipped = true
				for i := 0; i < n; i++ {
					r, done, err := s.Next()
					if done || err != nil {
						return r, done, err
					}
				}
			}
			return s.Next()
		}}
}

func (s *Stream[T]) limit(take int) *Stream[T] {
	i := 0
	var t T
	return &Stream[T]{
		s.name + ".limit",
		func() (T, bool, error) {
			if i >= take {
				return t, true, nil
			}
			i++
			return s.Next()
		}}
}

func (s *Stream[T]) Consume() ([]T, error) {
	var items []T
	for {
		r, done, err := s.Next()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		items = append(items, r)
	}
	return items, nil
}

func mapStream[T, U any](s *Stream[T], f func(T) (U, error)) *Stream[U] {
	var u U
	return &Stream[U]{
		s.name + ".map",
		func() (U, bool, error) {
			item, done, err := s.Next()
			if err != nil || done {
				return u, done, err
			}
			val, err := f(item)
			return val, false, err
		},
	}
}

func arrstream[T any](xs []T) *Stream[T] {
	var t T
	i := 0
	return &Stream[T]{
		"array",
		func() (T, bool, error) {
			if i >= len(xs) {
				return t, true, nil
			}
			r := xs[i]
			i++
			return r, false, nil
		},
	}
}
