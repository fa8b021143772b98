package consts

// commonly used constants that can be used anywhere, without ambiguity
const (
	DefaultOutputLen    = 32      // digest length when none is given
	DefaultTimeCost     = 1       // wandering passes
	DefaultRows         = 4       // rows, as in lyra2rev2
	DefaultCols         = 4       // columns, as in lyra2rev2
	DefaultLyra2Version = 2       // wandering row selection
	MaxOutputLen        = 1 << 16 // longest digest the CLI will print
	SaltLen             = 16      // bytes of random salt
	MemCacheBytes       = 1 << 24 // hash cache memory tier
	HeaderLen           = 80      // serialized block header
	DefaultNet          = "vtc"   // network for pow, check and mining
)
