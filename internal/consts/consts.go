package consts

const (
	DefaultAPIURL   = "https://api.customer.jp/anymotion/v1/"
	DefaultInterval = 5
	DefaultTimeout  = 600
	DefaultProfile  = "default"

	// APIPathMarker must appear in the path of every configured API URL.
	APIPathMarker = "anymotion"
	TokenPath     = "v1/oauth/accesstokens"
	PageSize      = 1000
)

type ExecStatus string

const (
	Unprocessed ExecStatus = "UNPROCESSED"
	Processing  ExecStatus = "PROCESSING"
	Success     ExecStatus = "SUCCESS"
	Failure     ExecStatus = "FAILURE"
)

var ExecStatuses = []ExecStatus{Success, Failure, Processing, Unprocessed}

func (s ExecStatus) String() string {
	return string(s)
}

func (s ExecStatus) Terminal() bool {
	return s == Success || s == Failure
}

func (s ExecStatus) Valid() bool {
	for _, v := range ExecStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type MediaType string

const (
	Image MediaType = "image"
	Movie MediaType = "movie"
)

func (m MediaType) String() string {
	return string(m)
}

// Endpoint is the collection path of the media type, e.g. "images".
func (m MediaType) Endpoint() string {
	return string(m) + "s"
}

var (
	MovieSuffixes = []string{".mp4", ".mov"}
	ImageSuffixes = []string{".jpg", ".jpeg", ".png"}
)

type Endpoint string

const (
	Images    Endpoint = "images"
	Movies    Endpoint = "movies"
	Keypoints Endpoint = "keypoints"
	Drawings  Endpoint = "drawings"
	Analyses  Endpoint = "analyses"
)

func (e Endpoint) String() string {
	return string(e)
}

const (
	EventRequest  = "request"
	EventResponse = "response"
)
