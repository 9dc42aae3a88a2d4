package version

// These values are injected at link time, for example
//
//   go build -ldflags "-X github.com/Oelderoth/LightWeaver-Module/version.GitHash=`git rev-parse HEAD` -X github.com/Oelderoth/LightWeaver-Module/version.BuildTime=`date -u +%FT%TZ`"
//
var (
	BuildTime = "unknown"
	GitHash   = "unknown"
)
