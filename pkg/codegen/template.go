package codegen

// componentTemplate is the fixed skeleton of every generated component.
// Markup arrives already indented for its place inside the wrapper div.
const componentTemplate = `{{if .TypeScript}}import type { JSX } from "solid-js";
{{end}}import { createSignal, mergeProps, splitProps } from "solid-js";
import { Motion } from "solid-motionone";
import { resolveTransition, resolveValues } from "{{.CompatImport}}";
{{if .TypeScript}}
export interface {{.Name}}Handle {
  startAnimation: () => void;
  stopAnimation: () => void;
}

export interface {{.Name}}Props
  extends Omit<JSX.HTMLAttributes<HTMLDivElement>, "ref"> {
  size?: number;
  ref?: (handle: {{.Name}}Handle) => void;
}
{{else}}
/**
 * @typedef {object} {{.Name}}Handle
 * @property {() => void} startAnimation
 * @property {() => void} stopAnimation
 */
{{end}}{{if .Variants}}
{{.Variants}}
{{end}}
const {{.Name}} = (rawProps{{if .TypeScript}}: {{.Name}}Props{{end}}) => {
  const props = mergeProps({ size: {{.DefaultSize}} }, rawProps);
  const [local, others] = splitProps(props, [
    "size",
    "class",
    "ref",
    "onMouseEnter",
    "onMouseLeave",
  ]);
{{range .Signals}}  const [{{.Getter}}, {{.Setter}}] = createSignal({{quote .Initial}});
{{end}}  let isControlled = false;

  if (local.ref) {
    isControlled = true;
    local.ref({
      startAnimation: () => {
{{range .Start}}        {{.Setter}}({{quote .Variant}});
{{end}}      },
      stopAnimation: () => {
{{range .Stop}}        {{.Setter}}({{quote .Variant}});
{{end}}      },
    });
  }

  const handleMouseEnter{{if .TypeScript}}: JSX.EventHandler<HTMLDivElement, MouseEvent>{{end}} = (e) => {
    if (isControlled) {
      if (typeof local.onMouseEnter === "function") local.onMouseEnter(e);
    } else {
{{range .HoverEnter}}      {{.Setter}}({{quote .Variant}});
{{end}}    }
  };

  const handleMouseLeave{{if .TypeScript}}: JSX.EventHandler<HTMLDivElement, MouseEvent>{{end}} = (e) => {
    if (isControlled) {
      if (typeof local.onMouseLeave === "function") local.onMouseLeave(e);
    } else {
{{range .HoverLeave}}      {{.Setter}}({{quote .Variant}});
{{end}}    }
  };

  return (
    <div
      class={local.class}
      onMouseEnter={handleMouseEnter}
      onMouseLeave={handleMouseLeave}
      {...others}
    >
{{.Markup}}
    </div>
  );
};

export { {{.Name}} };
`
