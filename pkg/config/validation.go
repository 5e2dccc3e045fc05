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

package config

import (
	"net"
	"net/url"
	"strconv"

	apimachineryvalidation "k8s.io/apimachinery/pkg/api/validation"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

var (
	namespacePath        = field.NewPath("namespace")
	serverPath           = field.NewPath("server")
	bindAddressPath      = serverPath.Child("bindAddress")
	allowedOriginsPath   = serverPath.Child("allowedOrigins")
	healthProbePath      = field.NewPath("health", "healthProbeBindAddress")
	notificationsCapPath = field.NewPath("notifications", "capacity")
	clientConnectionPath = field.NewPath("clientConnection")
)

func Validate(c *Configuration) field.ErrorList {
	var allErrs field.ErrorList

	if c.Namespace != "" {
		for _, msg := range validation.IsDNS1123Label(c.Namespace) {
			allErrs = append(allErrs, field.Invalid(namespacePath, c.Namespace, msg))
		}
	}

	allErrs = append(allErrs, validateBindAddress(bindAddressPath, c.Server.BindAddress)...)
	if c.Health.HealthProbeBindAddress != "" && c.Health.HealthProbeBindAddress != "0" {
		allErrs = append(allErrs, validateBindAddress(healthProbePath, c.Health.HealthProbeBindAddress)...)
	}
	allErrs = append(allErrs, validateAllowedOrigins(c)...)

	if c.Notifications.Capacity < 1 {
		allErrs = append(allErrs, field.Invalid(notificationsCapPath, c.Notifications.Capacity, "must be greater than or equal to 1"))
	}
	if c.ClientConnection.QPS < 0 {
		allErrs = append(allErrs, field.Invalid(clientConnectionPath.Child("qps"), c.ClientConnection.QPS, apimachineryvalidation.IsNegativeErrorMsg))
	}
	if c.ClientConnection.Burst < 0 {
		allErrs = append(allErrs, field.Invalid(clientConnectionPath.Child("burst"), c.ClientConnection.Burst, apimachineryvalidation.IsNegativeErrorMsg))
	}
	return allErrs
}

func validateBindAddress(path *field.Path, address string) field.ErrorList {
	var allErrs field.ErrorList
	_, port, err := net.SplitHostPort(address)
	if err != nil {
		return append(allErrs, field.Invalid(path, address, "must be in the host:port form"))
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return append(allErrs, field.Invalid(path, address, "port must be a number"))
	}
	for _, msg := range validation.IsValidPortNum(portNum) {
		allErrs = append(allErrs, field.Invalid(path, address, msg))
	}
	return allErrs
}

func validateAllowedOrigins(c *Configuration) field.ErrorList {
	var allErrs field.ErrorList
	for i, origin := range c.Server.AllowedOrigins {
		path := allowedOriginsPath.Index(i)
		if origin == "*" {
			if c.Server.ReleaseMode {
				allErrs = append(allErrs, field.Forbidden(path, "wildcard origin is not allowed in release mode"))
			}
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
			allErrs = append(allErrs, field.Invalid(path, origin, "must be an http or https URL"))
		}
	}
	if c.Server.ReleaseMode && len(c.Server.AllowedOrigins) == 0 {
		allErrs = append(allErrs, field.Required(allowedOriginsPath, "release mode requires explicit origins"))
	}
	return allErrs
}
