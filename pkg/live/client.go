package live

import (
	"encoding/json"
	"strings"

	"github.com/vango-dev/vrouter/pkg/render"
)

// ClientOptions configures the browser side of a live session.
type ClientOptions struct {
	// Path is the live endpoint, e.g. "/_live".
	Path string
	// Hash mirrors location.hash instead of the path.
	Hash bool
	// RootID is the element whose content is replaced on render.
	RootID string
}

const clientTemplate = `(function(){
var cfg=__CONFIG__;
var here=function(){return cfg.hash?location.hash:location.pathname+location.search+location.hash;};
var proto=location.protocol==="https:"?"wss:":"ws:";
var ws=new WebSocket(proto+"//"+location.host+cfg.path+"?url="+encodeURIComponent(here()));
var send=function(f){if(ws.readyState===1)ws.send(JSON.stringify(f));};
document.addEventListener("click",function(e){
if(e.defaultPrevented||e.button!==0||e.metaKey||e.ctrlKey||e.shiftKey||e.altKey)return;
var a=e.target.closest&&e.target.closest("a[data-link]");
if(!a||(a.target&&a.target!=="_self")||ws.readyState!==1)return;
e.preventDefault();
send({type:"navigate",url:a.getAttribute("href"),replace:a.hasAttribute("data-replace")});
});
window.addEventListener(cfg.hash?"hashchange":"popstate",function(){
var st=history.state||{};
send({type:"pop",url:here(),key:st.key,state:st.state});
});
ws.onmessage=function(ev){
var f=JSON.parse(ev.data);
switch(f.type){
case "render":var root=document.getElementById(cfg.root);if(root)root.innerHTML=f.html;break;
case "push":history.pushState({key:f.key,state:f.state},"",f.url);break;
case "replace":history.replaceState({key:f.key,state:f.state},"",f.url);break;
case "go":history.go(f.delta);break;
case "reload":location.assign(f.url);break;
case "error":console.error("vrouter:",f.error);break;
}
};
})();`

// ClientScript returns the inline script that connects a page to its
// live session.
func ClientScript(opts ClientOptions) string {
	if opts.RootID == "" {
		opts.RootID = render.DefaultRootID
	}
	cfg, _ := json.Marshal(struct {
		Path string `json:"path"`
		Hash bool   `json:"hash"`
		Root string `json:"root"`
	}{opts.Path, opts.Hash, opts.RootID})
	return strings.Replace(clientTemplate, "__CONFIG__", string(cfg), 1)
}

// ScriptTag returns the client script as a page script.
func ScriptTag(opts ClientOptions) render.ScriptTag {
	return render.ScriptTag{Inline: ClientScript(opts)}
}
