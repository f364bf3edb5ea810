package bignum

// Cmp compares x and y and returns -1, 0 or +1.
//
// The cell count decides first; equal lengths are compared cell by cell from
// the most significant end.
func (x Int) Cmp(y Int) int {
	return cmpCells(x.c(), y.c())
}

// cmpCells compares two cell slices that carry no redundant high zero cells.
func cmpCells(a, b []uint32) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Eq reports whether x == y.
func (x Int) Eq(y Int) bool { return x.Cmp(y) == 0 }

// Lt reports whether x < y.
func (x Int) Lt(y Int) bool { return x.Cmp(y) < 0 }

// Le reports whether x <= y.
func (x Int) Le(y Int) bool { return x.Cmp(y) <= 0 }

// Gt reports whether x > y.
func (x Int) Gt(y Int) bool { return x.Cmp(y) > 0 }

// Ge reports whether x >= y.
func (x Int) Ge(y Int) bool { return x.Cmp(y) >= 0 }

// IsZero reports whether x == 0.
func (x Int) IsZero() bool {
	xc := x.c()
	return len(xc) == 1 && xc[0] == 0
}

// IsOne reports whether x == 1.
func (x Int) IsOne() bool {
	xc := x.c()
	return len(xc) == 1 && xc[0] == 1
}

// IsEven reports whether x is divisible by two. The radix is even, so the
// parity of the lowest cell is the parity of the whole number.
func (x Int) IsEven() bool { return x.c()[0]&1 == 0 }
