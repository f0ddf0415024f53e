// Package solar fetches the latest solar disk image from a prioritized
// list of public imagery endpoints.
package solar

// Source is one named imagery endpoint. Sources are immutable and
// ordered: the first entry is the preferred (highest fidelity) source,
// later entries are fallbacks.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// DefaultCatalog returns the built-in source list in descending order
// of preference: SDO visible-light continuum first, then the
// magnetogram, the SOHO EIT wavelengths, and finally NOAA SUVI.
func DefaultCatalog() []Source {
	return []Source{
		{
			Name: "NASA SDO HMI Continuum",
			URL:  "https://sdo.gsfc.nasa.gov/assets/img/latest/latest_1024_hmiic.jpg",
		},
		{
			Name: "NASA SDO HMI Magnetogram",
			URL:  "https://sdo.gsfc.nasa.gov/assets/img/latest/latest_1024_hmib.jpg",
		},
		{
			Name: "SOHO EIT 195",
			URL:  "https://soho.nascom.nasa.gov/data/realtime/eit_195/512/latest.jpg",
		},
		{
			Name: "SOHO EIT 171",
			URL:  "https://soho.nascom.nasa.gov/data/realtime/eit_171/512/latest.jpg",
		},
		{
			Name: "SOHO EIT 304",
			URL:  "https://soho.nascom.nasa.gov/data/realtime/eit_304/512/latest.jpg",
		},
		{
			Name: "NOAA SUVI 171",
			URL:  "https://services.swpc.noaa.gov/images/animations/suvi/primary/171/latest.png",
		},
	}
}
