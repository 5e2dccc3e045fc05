/*
Copyright The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package version

// Base version information.
//
// These variables are set at build time through -ldflags, for example
// -X sigs.k8s.io/kueue-workload-status/pkg/version.GitVersion=v0.1.0
var (
	// GitVersion is the semantic version of the build.
	GitVersion = "v0.0.0-main"
	// GitCommit is the sha1 of the commit the binary was built from.
	GitCommit = "abcd01234"
	// BuildDate is the build date in RFC 3339 format.
	BuildDate = "1970-01-01T00:00:00Z"
)
