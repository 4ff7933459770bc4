package dsl

import goshape "github.com/reoring/goshape"

// String returns the string type.
func String() goshape.Type { return goshape.Type{Kind: goshape.KindString} }

// Number returns the float64 number type. Numeric strings are coerced.
func Number() goshape.Type { return goshape.Type{Kind: goshape.KindNumber} }

// Int returns the int64 integer type. Integral floats and numeric strings are coerced.
func Int() goshape.Type { return goshape.Type{Kind: goshape.KindInteger} }

// Bool returns the boolean type. "true"/"false"/"1"/"0"/"yes"/"no"/"on"/"off" are coerced.
func Bool() goshape.Type { return goshape.Type{Kind: goshape.KindBool} }

// URL returns the absolute http(s) URL type.
func URL() goshape.Type { return goshape.Type{Kind: goshape.KindURL} }

// Any accepts any value verbatim, including null.
func Any() goshape.Type { return goshape.Type{Kind: goshape.KindAny} }
