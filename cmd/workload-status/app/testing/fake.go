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

package testing

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"sigs.k8s.io/kueue-workload-status/cmd/workload-status/app/util"
)

type TestClientGetter struct {
	util.ClientGetter

	Client client.Client

	configFlags *genericclioptions.TestConfigFlags
}

var _ util.ClientGetter = (*TestClientGetter)(nil)

func NewTestClientGetter(c client.Client) *TestClientGetter {
	clientConfig := &clientcmd.DeferredLoadingClientConfig{}
	configFlags := genericclioptions.NewTestConfigFlags().
		WithClientConfig(clientConfig).
		WithNamespace(metav1.NamespaceDefault)
	return &TestClientGetter{
		ClientGetter: util.NewClientGetter(configFlags),
		Client:       c,
		configFlags:  configFlags,
	}
}

func (f *TestClientGetter) WithNamespace(ns string) *TestClientGetter {
	f.configFlags.WithNamespace(ns)
	return f
}

func (f *TestClientGetter) CtrlClient() (client.Client, error) {
	return f.Client, nil
}
