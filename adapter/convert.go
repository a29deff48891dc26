/*
   Copyright 2025 The OGuild Authors

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

// Package adapter converts intercepted failures into the portable projection
// types of package apis, for use in structured logging, tracing, and message
// bus propagation.
package adapter

import (
	"oguild.dev/police"
	"oguild.dev/police/apis"
	"oguild.dev/police/channel"
)

// ToDescriptor converts a failure together with its resolved transport status
// into a portable ErrorDescriptor.
//
// The descriptor carries both the logical kind/channel and the concrete
// transport statuses (HTTP and gRPC). The channel is passed in explicitly
// because a failure does not know which channel reported it.
func ToDescriptor(f *police.Failure, ch channel.Channel, st apis.Status) apis.ErrorDescriptor {
	if f == nil {
		return apis.ErrorDescriptor{}
	}
	return apis.ErrorDescriptor{
		Kind:       string(f.Kind),
		Channel:    string(ch),
		HTTPStatus: st.HTTP,
		GRPCCode:   int(st.GRPC),
		Message:    f.Message,
	}
}

// ToView converts a failure into a public ErrorView. This function performs
// no automatic redaction or filtering; it exposes exactly what the failure
// instance contains. Callers that hand views to external clients should
// sanitize the failure first.
//
// Details are flattened into sorted key/value pairs so the view is
// deterministic regardless of map iteration order.
func ToView(f *police.Failure, ch channel.Channel) apis.ErrorView {
	if f == nil {
		return apis.ErrorView{}
	}
	return apis.ErrorView{
		Kind:    string(f.Kind),
		Channel: string(ch),
		Message: f.Message,
		Details: apis.FlattenDetails(f.Details),
	}
}
